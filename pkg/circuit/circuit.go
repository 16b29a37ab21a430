package circuit

// Family groups component types by symbol family.
type Family string

// Symbol families of the closed type enumeration.
const (
	FamilyPassive  Family = "passive"
	FamilyBoard    Family = "board"
	FamilySensor   Family = "sensor"
	FamilyActuator Family = "actuator"
	FamilyDisplay  Family = "display"
	FamilyVirtual  Family = "virtual"
)

// Families maps every known component type to its symbol family.
// Types outside this map are accepted by the parser but rendered with a
// generic placeholder symbol.
var Families = map[string]Family{
	// Passive and basic parts
	"resistor":   FamilyPassive,
	"capacitor":  FamilyPassive,
	"inductor":   FamilyPassive,
	"led":        FamilyPassive,
	"battery":    FamilyPassive,
	"ground":     FamilyPassive,
	"switch":     FamilyPassive,
	"npn":        FamilyPassive,
	"transistor": FamilyPassive,

	// Microcontroller boards
	"arduino_uno":  FamilyBoard,
	"arduino_nano": FamilyBoard,
	"arduino_mega": FamilyBoard,
	"esp32":        FamilyBoard,
	"esp32_cam":    FamilyBoard,
	"esp8266":      FamilyBoard,

	// Sensors
	"ultrasonic":    FamilySensor,
	"dht11":         FamilySensor,
	"dht22":         FamilySensor,
	"pir":           FamilySensor,
	"ir_sensor":     FamilySensor,
	"accelerometer": FamilySensor,
	"gyro":          FamilySensor,
	"ldr":           FamilySensor,

	// Actuators
	"servo":    FamilyActuator,
	"dc_motor": FamilyActuator,
	"stepper":  FamilyActuator,
	"relay":    FamilyActuator,
	"buzzer":   FamilyActuator,
	"rgb_led":  FamilyActuator,

	// Display and input devices
	"lcd":           FamilyDisplay,
	"oled":          FamilyDisplay,
	"7segment":      FamilyDisplay,
	"potentiometer": FamilyDisplay,
	"pushbutton":    FamilyDisplay,

	// Virtual simulation-only objects
	"virtual_wall":     FamilyVirtual,
	"virtual_obstacle": FamilyVirtual,
	"virtual_target":   FamilyVirtual,
	"virtual_light":    FamilyVirtual,
}

// KnownType reports whether t is part of the closed type enumeration.
func KnownType(t string) bool {
	_, ok := Families[t]
	return ok
}

// Component is one declared circuit element. Components are immutable after
// parsing; the full set is rebuilt on every parse pass.
type Component struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// Connection is a directed relation between two component names. Endpoints
// are weak references: validity requires a same-pass component with that
// name, which the connection itself does not enforce.
type Connection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Circuit is the result of one parse pass.
type Circuit struct {
	Components  []Component  `json:"components"`
	Connections []Connection `json:"connections"`
}

// Component returns the component with the given name, if present.
func (c *Circuit) Component(name string) (Component, bool) {
	for _, comp := range c.Components {
		if comp.Name == name {
			return comp, true
		}
	}
	return Component{}, false
}

// Snapshot returns a copy of the component list for display-only consumers.
// Mutating the returned slice has no effect on the circuit.
func (c *Circuit) Snapshot() []Component {
	out := make([]Component, len(c.Components))
	copy(out, c.Components)
	return out
}

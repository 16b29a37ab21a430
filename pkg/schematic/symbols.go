package schematic

import (
	"fmt"
	"strings"
)

// Symbol describes the visual footprint for one component type: its nominal
// size, the primitive shapes drawn relative to the component anchor, and the
// anchor point for the name/value labels.
type Symbol struct {
	Width  float64
	Height float64
	Shapes []Shape

	// LabelAt is where the name label is centered. The value label, when
	// present, sits one line below.
	LabelAt Point
}

// Palette for symbol fills.
const (
	colorArduino = "#00878f"
	colorEsp     = "#37474f"
	colorSensor  = "#e3f2fd"
	colorActor   = "#fff3e0"
	colorDisplay = "#e8f5e9"
	colorLCD     = "#9ccc65"
	colorOLED    = "#263238"
	colorLead    = "#333333"
	colorAccent  = "#c62828"
	colorVirtual = "#7e57c2"
	colorBoardPn = "#cfd8dc"
)

// belowLabel returns the standard label anchor centered under a footprint.
func belowLabel(w, h float64) Point {
	return Point{X: w / 2, Y: h + 16}
}

// board builds a microcontroller-board footprint: a filled body, a title,
// and pin stubs along the top and bottom edges.
func board(w, h float64, fill, title string, pins int) Symbol {
	shapes := []Shape{
		filledRect(0, 0, w, h, fill),
		{Kind: KindText, X: w / 2, Y: h/2 + 5, Text: title, Size: 13, Bold: true, Fill: "#ffffff"},
	}
	step := w / float64(pins+1)
	for i := 1; i <= pins; i++ {
		x := step * float64(i)
		shapes = append(shapes,
			thinLine(x, -6, x, 0, colorBoardPn),
			thinLine(x, h, x, h+6, colorBoardPn))
	}
	return Symbol{Width: w, Height: h, Shapes: shapes, LabelAt: belowLabel(w, h+6)}
}

// module builds a generic sensor/actuator/display body the glyph shapes are
// layered onto.
func module(w, h float64, fill string, glyphs ...Shape) Symbol {
	shapes := append([]Shape{filledRect(0, 0, w, h, fill)}, glyphs...)
	return Symbol{Width: w, Height: h, Shapes: shapes, LabelAt: belowLabel(w, h)}
}

// Symbols maps each known component type to its symbol descriptor. The
// renderer dispatches through this table; unknown types go through
// [FallbackSymbol] instead.
var Symbols = map[string]Symbol{
	// --- passive and basic parts ---

	"resistor": {Width: 40, Height: 40, LabelAt: belowLabel(40, 32),
		Shapes: []Shape{
			polyline(Point{0, 20}, Point{6, 20}, Point{9, 12}, Point{15, 28},
				Point{21, 12}, Point{27, 28}, Point{31, 20}, Point{40, 20}),
		}},

	"capacitor": {Width: 40, Height: 40, LabelAt: belowLabel(40, 36),
		Shapes: []Shape{
			line(0, 20, 16, 20),
			line(16, 6, 16, 34),
			line(24, 6, 24, 34),
			line(24, 20, 40, 20),
		}},

	"inductor": {Width: 40, Height: 40, LabelAt: belowLabel(40, 32),
		Shapes: []Shape{
			path("M 0 20 A 5 9 0 0 1 10 20 A 5 9 0 0 1 20 20 A 5 9 0 0 1 30 20 A 5 9 0 0 1 40 20"),
		}},

	"led": {Width: 40, Height: 40, LabelAt: belowLabel(40, 36),
		Shapes: []Shape{
			line(0, 20, 12, 20),
			polygon(colorAccent, Point{12, 10}, Point{12, 30}, Point{26, 20}),
			line(26, 10, 26, 30),
			line(26, 20, 40, 20),
			thinLine(20, 8, 27, 1, colorLead),
			thinLine(27, 1, 24, 3, colorLead),
			thinLine(26, 12, 33, 5, colorLead),
			thinLine(33, 5, 30, 7, colorLead),
		}},

	"battery": {Width: 40, Height: 40, LabelAt: belowLabel(40, 36),
		Shapes: []Shape{
			line(0, 20, 14, 20),
			line(14, 4, 14, 36),
			{Kind: KindLine, Points: []Point{{22, 12}, {22, 28}}, StrokeWidth: 4},
			line(22, 20, 40, 20),
			text(8, 10, "+", 11),
		}},

	"ground": {Width: 40, Height: 30, LabelAt: belowLabel(40, 30),
		Shapes: []Shape{
			line(20, 0, 20, 12),
			line(6, 12, 34, 12),
			line(12, 19, 28, 19),
			line(17, 26, 23, 26),
		}},

	"switch": {Width: 40, Height: 30, LabelAt: belowLabel(40, 24),
		Shapes: []Shape{
			line(0, 20, 12, 20),
			filledCircle(12, 20, 2.5, colorLead),
			line(12, 20, 29, 8),
			filledCircle(30, 20, 2.5, colorLead),
			line(30, 20, 40, 20),
		}},

	"npn":        transistorSymbol(),
	"transistor": transistorSymbol(),

	// --- microcontroller boards ---

	"arduino_uno":  board(120, 80, colorArduino, "UNO", 9),
	"arduino_nano": board(100, 40, colorArduino, "NANO", 7),
	"arduino_mega": board(160, 100, colorArduino, "MEGA", 12),
	"esp32":        board(100, 60, colorEsp, "ESP32", 8),
	"esp32_cam":    espCamSymbol(),
	"esp8266":      board(80, 50, colorEsp, "ESP8266", 6),

	// --- sensors ---

	"ultrasonic": module(80, 40, colorSensor,
		circle(22, 20, 12),
		circle(58, 20, 12),
		circle(22, 20, 6),
		circle(58, 20, 6)),

	"dht11": module(40, 50, colorSensor,
		thinLine(8, 10, 32, 10, colorLead),
		thinLine(8, 20, 32, 20, colorLead),
		thinLine(8, 30, 32, 30, colorLead),
		text(20, 44, "DHT11", 8)),

	"dht22": module(40, 50, colorSensor,
		thinLine(8, 10, 32, 10, colorLead),
		thinLine(8, 20, 32, 20, colorLead),
		thinLine(8, 30, 32, 30, colorLead),
		text(20, 44, "DHT22", 8)),

	"pir": module(50, 40, colorSensor,
		path("M 10 30 A 15 15 0 0 1 40 30"),
		line(10, 30, 40, 30)),

	"ir_sensor": module(40, 40, colorSensor,
		polygon("", Point{12, 12}, Point{12, 28}, Point{24, 20}),
		thinLine(28, 10, 34, 4, colorLead),
		thinLine(28, 18, 34, 12, colorLead)),

	"accelerometer": module(50, 40, colorSensor,
		line(25, 8, 25, 32),
		line(13, 20, 37, 20),
		thinLine(25, 8, 21, 12, colorLead),
		thinLine(25, 8, 29, 12, colorLead),
		thinLine(37, 20, 33, 16, colorLead),
		thinLine(37, 20, 33, 24, colorLead)),

	"gyro": module(50, 40, colorSensor,
		circle(25, 20, 12),
		path("M 25 8 A 12 12 0 0 1 37 20"),
		thinLine(37, 20, 33, 14, colorLead),
		thinLine(37, 20, 41, 15, colorLead)),

	"ldr": module(40, 30, colorSensor,
		rect(8, 10, 24, 10),
		thinLine(2, 2, 10, 9, colorLead),
		thinLine(12, 0, 20, 7, colorLead)),

	// --- actuators ---

	"servo": module(60, 40, colorActor,
		filledRect(6, 12, 30, 20, "#ffffff"),
		filledCircle(42, 22, 6, "#ffffff"),
		line(42, 22, 54, 10)),

	"dc_motor": {Width: 50, Height: 50, LabelAt: belowLabel(50, 50),
		Shapes: []Shape{
			circle(25, 25, 20),
			boldText(25, 31, "M", 16),
			line(0, 25, 5, 25),
			line(45, 25, 50, 25),
		}},

	"stepper": {Width: 50, Height: 50, LabelAt: belowLabel(50, 50),
		Shapes: []Shape{
			circle(25, 25, 20),
			boldText(25, 30, "ST", 12),
			line(25, 0, 25, 5),
			line(25, 45, 25, 50),
			line(0, 25, 5, 25),
			line(45, 25, 50, 25),
		}},

	"relay": module(60, 40, colorActor,
		thinLine(30, 4, 30, 36, colorLead),
		polyline(Point{6, 20}, Point{10, 12}, Point{14, 28}, Point{18, 12}, Point{22, 28}, Point{26, 20}),
		line(36, 26, 50, 14),
		filledCircle(36, 26, 2, colorLead),
		filledCircle(52, 26, 2, colorLead)),

	"buzzer": {Width: 40, Height: 40, LabelAt: belowLabel(40, 40),
		Shapes: []Shape{
			circle(20, 20, 16),
			filledCircle(20, 20, 5, colorLead),
			text(20, 9, "+", 10),
		}},

	"rgb_led": {Width: 40, Height: 40, LabelAt: belowLabel(40, 36),
		Shapes: []Shape{
			line(0, 20, 12, 20),
			polygon("", Point{12, 10}, Point{12, 30}, Point{26, 20}),
			line(26, 10, 26, 30),
			line(26, 20, 40, 20),
			filledCircle(14, 34, 3, "#e53935"),
			filledCircle(22, 34, 3, "#43a047"),
			filledCircle(30, 34, 3, "#1e88e5"),
		}},

	// --- display and input devices ---

	"lcd": module(120, 50, colorDisplay,
		filledRect(10, 10, 100, 26, colorLCD),
		thinLine(16, 18, 104, 18, "#558b2f"),
		thinLine(16, 28, 104, 28, "#558b2f")),

	"oled": module(60, 40, colorDisplay,
		filledRect(6, 8, 48, 24, colorOLED)),

	"7segment": module(40, 60, colorDisplay,
		thinLine(12, 12, 28, 12, colorLead),
		thinLine(12, 30, 28, 30, colorLead),
		thinLine(12, 48, 28, 48, colorLead),
		thinLine(12, 12, 12, 48, colorLead),
		thinLine(28, 12, 28, 48, colorLead)),

	"potentiometer": {Width: 40, Height: 40, LabelAt: belowLabel(40, 36),
		Shapes: []Shape{
			polyline(Point{0, 26}, Point{6, 26}, Point{9, 18}, Point{15, 34},
				Point{21, 18}, Point{27, 34}, Point{31, 26}, Point{40, 26}),
			line(20, 6, 20, 20),
			thinLine(20, 20, 16, 14, colorLead),
			thinLine(20, 20, 24, 14, colorLead),
		}},

	"pushbutton": {Width: 40, Height: 30, LabelAt: belowLabel(40, 26),
		Shapes: []Shape{
			line(0, 22, 12, 22),
			filledCircle(12, 22, 2.5, colorLead),
			filledCircle(28, 22, 2.5, colorLead),
			line(28, 22, 40, 22),
			line(8, 10, 32, 10),
			line(20, 10, 20, 4),
		}},

	// --- virtual simulation-only objects ---

	"virtual_wall": {Width: 80, Height: 20, LabelAt: belowLabel(80, 20),
		Shapes: []Shape{
			{Kind: KindRect, X: 0, Y: 0, W: 80, H: 20, Stroke: colorVirtual, Dash: true},
			thinLine(10, 20, 20, 0, colorVirtual),
			thinLine(30, 20, 40, 0, colorVirtual),
			thinLine(50, 20, 60, 0, colorVirtual),
			thinLine(70, 20, 80, 0, colorVirtual),
		}},

	"virtual_obstacle": {Width: 40, Height: 40, LabelAt: belowLabel(40, 40),
		Shapes: []Shape{
			{Kind: KindRect, X: 0, Y: 0, W: 40, H: 40, Stroke: colorVirtual, Dash: true},
			thinLine(0, 0, 40, 40, colorVirtual),
			thinLine(40, 0, 0, 40, colorVirtual),
		}},

	"virtual_target": {Width: 40, Height: 40, LabelAt: belowLabel(40, 40),
		Shapes: []Shape{
			{Kind: KindCircle, CX: 20, CY: 20, R: 18, Stroke: colorVirtual},
			{Kind: KindCircle, CX: 20, CY: 20, R: 11, Stroke: colorVirtual},
			{Kind: KindCircle, CX: 20, CY: 20, R: 4, Stroke: colorVirtual, Fill: colorVirtual},
		}},

	"virtual_light": virtualLightSymbol(),
}

func transistorSymbol() Symbol {
	return Symbol{Width: 40, Height: 40, LabelAt: belowLabel(40, 40),
		Shapes: []Shape{
			circle(22, 20, 15),
			line(14, 10, 14, 30),
			line(0, 20, 14, 20),
			line(14, 15, 30, 7),
			line(14, 25, 30, 33),
			thinLine(30, 33, 24, 31, colorLead),
			thinLine(30, 33, 28, 27, colorLead),
			text(3, 16, "B", 8),
			text(33, 8, "C", 8),
			text(33, 39, "E", 8),
		}}
}

func espCamSymbol() Symbol {
	s := board(100, 70, colorEsp, "ESP32-CAM", 8)
	s.Shapes = append(s.Shapes,
		circle(50, 22, 10),
		filledCircle(50, 22, 4, "#90a4ae"))
	return s
}

func virtualLightSymbol() Symbol {
	shapes := []Shape{{Kind: KindCircle, CX: 20, CY: 20, R: 10, Stroke: colorVirtual, Fill: "#fff59d"}}
	// Eight rays at 45° steps.
	offsets := []Point{{14, 0}, {10, 10}, {0, 14}, {-10, 10}, {-14, 0}, {-10, -10}, {0, -14}, {10, -10}}
	for _, o := range offsets {
		shapes = append(shapes, thinLine(20+o.X*0.9, 20+o.Y*0.9, 20+o.X*1.4, 20+o.Y*1.4, colorVirtual))
	}
	return Symbol{Width: 40, Height: 40, Shapes: shapes, LabelAt: belowLabel(40, 40)}
}

// FallbackSymbol builds the generic placeholder used for types outside the
// closed enumeration: a dashed rectangle annotated with the uppercased type
// literal.
func FallbackSymbol(typ string) Symbol {
	return Symbol{
		Width:  80,
		Height: 40,
		Shapes: []Shape{
			{Kind: KindRect, X: 0, Y: 0, W: 80, H: 40, Dash: true},
			boldText(40, 25, strings.ToUpper(typ), 11),
		},
		LabelAt: belowLabel(80, 40),
	}
}

// SymbolFor resolves a component type to its symbol. The second result
// reports whether the type was found in the table; when false, the returned
// symbol is the generic placeholder.
func SymbolFor(typ string) (Symbol, bool) {
	if s, ok := Symbols[typ]; ok {
		return s, true
	}
	return FallbackSymbol(typ), false
}

// ensure the table stays in sync with the wire anchor convention: wires
// leave a component at its anchor plus this offset and enter at the entry
// offset.
const (
	WireExitDX  = 40.0
	WireExitDY  = 20.0
	WireEntryDX = 0.0
	WireEntryDY = 20.0
)

func init() {
	for typ, s := range Symbols {
		if s.Width <= 0 || s.Height <= 0 {
			panic(fmt.Sprintf("schematic: symbol %q has no footprint", typ))
		}
	}
}

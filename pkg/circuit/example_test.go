package circuit_test

import (
	"fmt"

	"github.com/wiretrace/wiretrace/pkg/circuit"
)

func ExampleParse() {
	text := `// simple blink circuit
R1: resistor 330 (250,100)
LED1: led red
R1 -> LED1`

	c, err := circuit.Parse(text)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, comp := range c.Components {
		fmt.Printf("%s %s %q at (%d,%d)\n", comp.Name, comp.Type, comp.Value, comp.X, comp.Y)
	}
	for _, conn := range c.Connections {
		fmt.Printf("%s -> %s\n", conn.From, conn.To)
	}
	// Output:
	// R1 resistor "330" at (250,100)
	// LED1 led "red" at (200,100)
	// R1 -> LED1
}

func ExampleValidate() {
	text := `R1: resistor
R1: capacitor
R1 -> GHOST`

	for _, d := range circuit.Validate(text) {
		fmt.Println(d)
	}
	// Output:
	// line 2: error: duplicate component name "R1" (first declared on line 1)
	// line 3: error: connection references undeclared component "GHOST"
}

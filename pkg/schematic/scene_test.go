package schematic

import (
	"strings"
	"testing"

	"github.com/wiretrace/wiretrace/pkg/circuit"
	"github.com/wiretrace/wiretrace/pkg/errors"
)

func mustParse(t *testing.T, text string) *circuit.Circuit {
	t.Helper()
	c, err := circuit.Parse(text)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return c
}

func TestBuildDrawOrder(t *testing.T) {
	c := mustParse(t, "R1: resistor (100,100)\nLED1: led (300,100)\nR1 -> LED1")

	scene, diags := Build(c, Options{})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	// Grid first, then wires, then symbols.
	var order []ElementKind
	for _, e := range scene.Elements {
		order = append(order, e.Kind)
	}
	want := []ElementKind{ElementGrid, ElementWire, ElementSymbol, ElementSymbol}
	if len(order) != len(want) {
		t.Fatalf("element kinds = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("element kinds = %v, want %v", order, want)
		}
	}
}

func TestBuildWireEndpoints(t *testing.T) {
	c := mustParse(t, "R1: resistor (100,100)\nLED1: led (300,200)\nR1 -> LED1")

	scene, _ := Build(c, Options{})
	wires := scene.Wires()
	if len(wires) != 1 {
		t.Fatalf("got %d wires, want 1", len(wires))
	}

	lineShape := wires[0].Shapes[0]
	if lineShape.Kind != KindLine {
		t.Fatalf("first wire shape is %v, want line", lineShape.Kind)
	}
	// Exit at source anchor + (40, 20), entry at destination anchor + (0, 20).
	if lineShape.Points[0] != (Point{140, 120}) {
		t.Errorf("wire start = %+v, want (140,120)", lineShape.Points[0])
	}
	if lineShape.Points[1] != (Point{300, 220}) {
		t.Errorf("wire end = %+v, want (300,220)", lineShape.Points[1])
	}

	// Terminal dots at both endpoints.
	dots := 0
	for _, s := range wires[0].Shapes[1:] {
		if s.Kind == KindCircle && s.Fill != "" {
			dots++
		}
	}
	if dots != 2 {
		t.Errorf("got %d terminal dots, want 2", dots)
	}
}

func TestBuildSkipsDanglingConnection(t *testing.T) {
	c := mustParse(t, "R1: resistor\nR1 -> GHOST")

	scene, diags := Build(c, Options{})

	if len(scene.Wires()) != 0 {
		t.Error("dangling connection produced a wire element")
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Code != errors.ErrCodeDanglingEndpoint {
		t.Errorf("code = %v, want DANGLING_ENDPOINT", diags[0].Code)
	}
	if diags[0].Severity != circuit.SeverityWarning {
		t.Errorf("severity = %v, want warning (best-effort policy)", diags[0].Severity)
	}
}

func TestBuildUnknownTypeFallsBack(t *testing.T) {
	c := mustParse(t, "X1: fluxcapacitor")

	scene, diags := Build(c, Options{})

	symbols := scene.SymbolElements()
	if len(symbols) != 1 {
		t.Fatalf("got %d symbols, want 1", len(symbols))
	}
	if !symbols[0].Fallback {
		t.Error("unknown type should render as fallback")
	}

	// The placeholder carries the uppercased type literal.
	found := false
	for _, s := range symbols[0].Shapes {
		if s.Kind == KindText && s.Text == "FLUXCAPACITOR" {
			found = true
		}
	}
	if !found {
		t.Error("fallback symbol missing uppercased type annotation")
	}

	if len(diags) != 1 || diags[0].Code != errors.ErrCodeUnknownType {
		t.Errorf("diagnostics = %v, want one UNKNOWN_TYPE", diags)
	}
}

func TestBuildLabels(t *testing.T) {
	c := mustParse(t, "R1: resistor 330")

	scene, _ := Build(c, Options{})
	sym := scene.SymbolElements()[0]

	var nameLabel, valueLabel *Shape
	for i := range sym.Shapes {
		s := &sym.Shapes[i]
		if s.Kind != KindText {
			continue
		}
		switch s.Text {
		case "R1":
			nameLabel = s
		case "330":
			valueLabel = s
		}
	}

	if nameLabel == nil {
		t.Fatal("name label missing")
	}
	if !nameLabel.Bold {
		t.Error("name label should be bold")
	}
	if valueLabel == nil {
		t.Fatal("value label missing")
	}
	if valueLabel.Y <= nameLabel.Y {
		t.Error("value label should sit below the name label")
	}
}

func TestBuildNoValueNoSecondLabel(t *testing.T) {
	c := mustParse(t, "GND: ground")

	scene, _ := Build(c, Options{})
	texts := 0
	for _, s := range scene.SymbolElements()[0].Shapes {
		if s.Kind == KindText {
			texts++
		}
	}
	if texts != 1 {
		t.Errorf("got %d text shapes, want just the name label", texts)
	}
}

func TestBuildCanvasGrows(t *testing.T) {
	c := mustParse(t, "R1: resistor (2000, 1500)")

	scene, _ := Build(c, Options{})
	if scene.Width <= 2000 {
		t.Errorf("width = %v, want > 2000", scene.Width)
	}
	if scene.Height <= 1500 {
		t.Errorf("height = %v, want > 1500", scene.Height)
	}
}

func TestBuildMinimumCanvas(t *testing.T) {
	c := mustParse(t, "R1: resistor (100,100)")

	scene, _ := Build(c, Options{})
	if scene.Width != 800 || scene.Height != 600 {
		t.Errorf("canvas = %vx%v, want default 800x600", scene.Width, scene.Height)
	}
}

func TestBuildGridDisabled(t *testing.T) {
	c := mustParse(t, "R1: resistor")

	scene, _ := Build(c, Options{GridSpacing: -1})
	for _, e := range scene.Elements {
		if e.Kind == ElementGrid {
			t.Fatal("grid element present despite negative spacing")
		}
	}
}

func TestWireNameFormat(t *testing.T) {
	c := mustParse(t, "A: resistor (100,100)\nB: led (300,100)\nA -> B")

	scene, _ := Build(c, Options{})
	if got := scene.Wires()[0].Name; !strings.Contains(got, "A->B") {
		t.Errorf("wire name = %q, want it to identify the pair", got)
	}
}

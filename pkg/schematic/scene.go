package schematic

import (
	"fmt"

	"github.com/wiretrace/wiretrace/pkg/circuit"
	"github.com/wiretrace/wiretrace/pkg/errors"
)

// ElementKind classifies scene elements.
type ElementKind string

const (
	ElementGrid   ElementKind = "grid"
	ElementWire   ElementKind = "wire"
	ElementSymbol ElementKind = "symbol"
)

// Element is one positioned entry of the scene graph. Shapes are relative
// to (X, Y).
type Element struct {
	Kind     ElementKind `json:"kind"`
	Name     string      `json:"name,omitempty"`
	Type     string      `json:"type,omitempty"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Shapes   []Shape     `json:"shapes,omitempty"`
	Fallback bool        `json:"fallback,omitempty"`
}

// Scene is a renderable diagram. Elements is in draw order: the grid first,
// then wires, then symbols.
type Scene struct {
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	GridSpacing float64   `json:"gridSpacing"`
	Elements    []Element `json:"elements"`
}

// Wires returns the wire elements of the scene.
func (s *Scene) Wires() []Element {
	return s.byKind(ElementWire)
}

// SymbolElements returns the symbol elements of the scene.
func (s *Scene) SymbolElements() []Element {
	return s.byKind(ElementSymbol)
}

func (s *Scene) byKind(kind ElementKind) []Element {
	var out []Element
	for _, e := range s.Elements {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Options configures scene construction.
type Options struct {
	// GridSpacing is the background grid pitch. Zero means the default (50);
	// negative disables the grid.
	GridSpacing float64

	// MinWidth and MinHeight bound the canvas from below. Zero means the
	// default 800×600 canvas.
	MinWidth  float64
	MinHeight float64

	// Margin is the padding added beyond the furthest footprint.
	Margin float64
}

func (o *Options) setDefaults() {
	if o.GridSpacing == 0 {
		o.GridSpacing = 50
	}
	if o.MinWidth == 0 {
		o.MinWidth = 800
	}
	if o.MinHeight == 0 {
		o.MinHeight = 600
	}
	if o.Margin == 0 {
		o.Margin = 60
	}
}

const (
	wireStroke   = "#546e7a"
	terminalDotR = 3.0
	gridStroke   = "#e6e9ec"
)

// Build converts a parsed circuit into a scene, applying the best-effort
// degradation policy: connections with a missing endpoint are skipped and
// unknown component types fall back to the placeholder symbol. Every skip
// and fallback is reported in the returned diagnostic list; an empty list
// means the scene reproduces the circuit exactly.
//
// The element order of the returned scene is the draw order contract: grid,
// then wires, then symbols.
func Build(c *circuit.Circuit, opts Options) (*Scene, []circuit.Diagnostic) {
	opts.setDefaults()

	var diags []circuit.Diagnostic

	scene := &Scene{GridSpacing: opts.GridSpacing}
	scene.Width, scene.Height = canvasSize(c, opts)

	if opts.GridSpacing > 0 {
		scene.Elements = append(scene.Elements, gridElement(scene.Width, scene.Height, opts.GridSpacing))
	}

	for _, conn := range c.Connections {
		from, okFrom := c.Component(conn.From)
		to, okTo := c.Component(conn.To)
		if !okFrom || !okTo {
			diags = append(diags, circuit.Diagnostic{
				Severity: circuit.SeverityWarning,
				Code:     errors.ErrCodeDanglingEndpoint,
				Message:  fmt.Sprintf("connection %s -> %s skipped: endpoint not in component list", conn.From, conn.To),
			})
			continue
		}
		scene.Elements = append(scene.Elements, wireElement(from, to))
	}

	for _, comp := range c.Components {
		sym, known := SymbolFor(comp.Type)
		if !known {
			diags = append(diags, circuit.Diagnostic{
				Severity: circuit.SeverityWarning,
				Code:     errors.ErrCodeUnknownType,
				Message:  fmt.Sprintf("component %s: unknown type %q rendered as placeholder", comp.Name, comp.Type),
			})
		}
		scene.Elements = append(scene.Elements, symbolElement(comp, sym, !known))
	}

	return scene, diags
}

// canvasSize computes the canvas dimensions from the furthest footprint,
// bounded below by the minimum canvas.
func canvasSize(c *circuit.Circuit, opts Options) (w, h float64) {
	w, h = opts.MinWidth, opts.MinHeight
	for _, comp := range c.Components {
		sym, _ := SymbolFor(comp.Type)
		if right := float64(comp.X) + sym.Width + opts.Margin; right > w {
			w = right
		}
		if bottom := float64(comp.Y) + sym.Height + opts.Margin; bottom > h {
			h = bottom
		}
	}
	return w, h
}

func gridElement(w, h, spacing float64) Element {
	var shapes []Shape
	for x := spacing; x < w; x += spacing {
		shapes = append(shapes, thinLine(x, 0, x, h, gridStroke))
	}
	for y := spacing; y < h; y += spacing {
		shapes = append(shapes, thinLine(0, y, w, y, gridStroke))
	}
	return Element{Kind: ElementGrid, Shapes: shapes}
}

// wireElement draws a straight wire from the source's exit point to the
// destination's entry point, with a terminal dot at each end. Shapes are
// absolute here (the element anchor is the origin) because a wire belongs
// to two components.
func wireElement(from, to circuit.Component) Element {
	x1 := float64(from.X) + WireExitDX
	y1 := float64(from.Y) + WireExitDY
	x2 := float64(to.X) + WireEntryDX
	y2 := float64(to.Y) + WireEntryDY

	return Element{
		Kind: ElementWire,
		Name: from.Name + "->" + to.Name,
		Shapes: []Shape{
			{Kind: KindLine, Points: []Point{{x1, y1}, {x2, y2}}, Stroke: wireStroke},
			filledCircle(x1, y1, terminalDotR, wireStroke),
			filledCircle(x2, y2, terminalDotR, wireStroke),
		},
	}
}

// symbolElement instantiates a symbol at the component position and appends
// the name label (bold, centered) and, when non-empty, the value line.
func symbolElement(comp circuit.Component, sym Symbol, fallback bool) Element {
	shapes := make([]Shape, len(sym.Shapes), len(sym.Shapes)+2)
	copy(shapes, sym.Shapes)

	shapes = append(shapes, boldText(sym.LabelAt.X, sym.LabelAt.Y, comp.Name, 12))
	if comp.Value != "" {
		shapes = append(shapes, text(sym.LabelAt.X, sym.LabelAt.Y+14, comp.Value, 10))
	}

	return Element{
		Kind:     ElementSymbol,
		Name:     comp.Name,
		Type:     comp.Type,
		X:        float64(comp.X),
		Y:        float64(comp.Y),
		Shapes:   shapes,
		Fallback: fallback,
	}
}

package schematic

import (
	"bytes"
	"fmt"
	"strings"
)

// Renderer defaults applied when a shape leaves presentation fields empty.
const (
	defaultStroke      = "#333333"
	defaultStrokeWidth = 2.0
	backgroundFill     = "#ffffff"
	fontFamily         = "Helvetica, Arial, sans-serif"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	zoom       float64
	background string
	showGrid   bool
}

// WithSVGZoom scales the rendered presentation. The factor is clamped to the
// zoom range; it affects only the width/height attributes, never the viewBox
// or the coordinate data, so exports stay zoom-independent.
func WithSVGZoom(factor float64) SVGOption {
	return func(r *svgRenderer) { r.zoom = ClampZoom(factor) }
}

// WithBackground sets the background fill color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithoutGrid suppresses the background grid.
func WithoutGrid() SVGOption {
	return func(r *svgRenderer) { r.showGrid = false }
}

// RenderSVG serializes the scene to a standalone SVG document. The output
// reproduces the scene exactly: elements are written in scene order, which
// Build guarantees to be grid, wires, symbols.
func RenderSVG(s *Scene, opts ...SVGOption) []byte {
	r := svgRenderer{zoom: 1.0, background: backgroundFill, showGrid: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width*r.zoom, s.Height*r.zoom)
	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		s.Width, s.Height, r.background)

	for _, e := range s.Elements {
		if e.Kind == ElementGrid && !r.showGrid {
			continue
		}
		fmt.Fprintf(&buf, `<g class="%s"`, e.Kind)
		if e.Name != "" {
			fmt.Fprintf(&buf, ` data-name="%s"`, escapeAttr(e.Name))
		}
		if e.X != 0 || e.Y != 0 {
			fmt.Fprintf(&buf, ` transform="translate(%.1f,%.1f)"`, e.X, e.Y)
		}
		buf.WriteString(">\n")
		for _, shape := range e.Shapes {
			writeShape(&buf, shape)
		}
		buf.WriteString("</g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeShape(buf *bytes.Buffer, s Shape) {
	stroke := s.Stroke
	if stroke == "" {
		stroke = defaultStroke
	}
	width := s.StrokeWidth
	if width == 0 {
		width = defaultStrokeWidth
	}
	fill := s.Fill
	if fill == "" {
		fill = "none"
	}

	dash := ""
	if s.Dash {
		dash = ` stroke-dasharray="5,4"`
	}

	switch s.Kind {
	case KindLine:
		if len(s.Points) < 2 {
			return
		}
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" stroke-linecap="round"%s/>`+"\n",
			s.Points[0].X, s.Points[0].Y, s.Points[1].X, s.Points[1].Y, stroke, width, dash)

	case KindPolyline:
		fmt.Fprintf(buf, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"%s/>`+"\n",
			pointList(s.Points), stroke, width, dash)

	case KindPolygon:
		fmt.Fprintf(buf, `<polygon points="%s" fill="%s" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			pointList(s.Points), fill, stroke, width, dash)

	case KindCircle:
		fmt.Fprintf(buf, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			s.CX, s.CY, s.R, fill, stroke, width, dash)

	case KindRect:
		fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			s.X, s.Y, s.W, s.H, fill, stroke, width, dash)

	case KindPath:
		fmt.Fprintf(buf, `<path d="%s" fill="%s" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			s.D, fill, stroke, width, dash)

	case KindText:
		weight := "normal"
		if s.Bold {
			weight = "bold"
		}
		anchor := s.Anchor
		if anchor == "" {
			anchor = "middle"
		}
		textFill := s.Fill
		if textFill == "" {
			textFill = defaultStroke
		}
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" font-weight="%s" text-anchor="%s" fill="%s">%s</text>`+"\n",
			s.X, s.Y, fontFamily, s.Size, weight, anchor, textFill, escapeText(s.Text))
	}
}

func pointList(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

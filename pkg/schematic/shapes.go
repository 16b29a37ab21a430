package schematic

// ShapeKind discriminates the primitive variants a Shape can hold.
type ShapeKind int

const (
	KindLine ShapeKind = iota
	KindPolyline
	KindPolygon
	KindCircle
	KindRect
	KindPath
	KindText
)

// Point is a coordinate in diagram space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is one drawing primitive, expressed relative to its element's
// anchor. Only the fields for its Kind are meaningful.
type Shape struct {
	Kind ShapeKind `json:"kind"`

	// Line, Polyline, Polygon
	Points []Point `json:"points,omitempty"`

	// Rect
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	// Circle
	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`
	R  float64 `json:"r,omitempty"`

	// Path (SVG path data, relative coordinates)
	D string `json:"d,omitempty"`

	// Text
	Text   string  `json:"text,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Anchor string  `json:"anchor,omitempty"` // SVG text-anchor; empty means middle

	// Presentation. Empty values fall back to the renderer defaults
	// (stroke #333, width 2, no fill).
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Dash        bool    `json:"dash,omitempty"`
}

// Shape constructors keep the symbol table readable.

func line(x1, y1, x2, y2 float64) Shape {
	return Shape{Kind: KindLine, Points: []Point{{x1, y1}, {x2, y2}}}
}

func thinLine(x1, y1, x2, y2 float64, stroke string) Shape {
	return Shape{Kind: KindLine, Points: []Point{{x1, y1}, {x2, y2}}, Stroke: stroke, StrokeWidth: 1}
}

func polyline(pts ...Point) Shape {
	return Shape{Kind: KindPolyline, Points: pts}
}

func polygon(fill string, pts ...Point) Shape {
	return Shape{Kind: KindPolygon, Points: pts, Fill: fill}
}

func circle(cx, cy, r float64) Shape {
	return Shape{Kind: KindCircle, CX: cx, CY: cy, R: r}
}

func filledCircle(cx, cy, r float64, fill string) Shape {
	return Shape{Kind: KindCircle, CX: cx, CY: cy, R: r, Fill: fill}
}

func rect(x, y, w, h float64) Shape {
	return Shape{Kind: KindRect, X: x, Y: y, W: w, H: h}
}

func filledRect(x, y, w, h float64, fill string) Shape {
	return Shape{Kind: KindRect, X: x, Y: y, W: w, H: h, Fill: fill}
}

func path(d string) Shape {
	return Shape{Kind: KindPath, D: d}
}

func text(x, y float64, s string, size float64) Shape {
	return Shape{Kind: KindText, X: x, Y: y, Text: s, Size: size}
}

func boldText(x, y float64, s string, size float64) Shape {
	return Shape{Kind: KindText, X: x, Y: y, Text: s, Size: size, Bold: true}
}

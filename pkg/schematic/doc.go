// Package schematic renders parsed circuits as schematic diagrams.
//
// # Architecture
//
// The package sits between the parser and the export formats:
//
//   - [Build]: circuit → [Scene] (positioned grid, wires, symbols)
//   - [RenderSVG]: scene → SVG bytes
//   - [RasterizePNG]: SVG bytes → fixed-canvas PNG
//   - [ToDOT], [RenderDOT]: circuit → Graphviz netlist overview
//
// # Scene Model
//
// A Scene is an ordered list of elements. Order is draw order and is
// guaranteed by Build: the background grid first, then one wire per
// connection, then one symbol per component, so wires never occlude symbols
// and symbols never occlude the grid.
//
// # Symbols
//
// Component types map to symbols through a declarative descriptor table
// ([Symbols]): footprint size, primitive shapes, and label anchors. Adding a
// type means adding a table entry, not a new code path. Types outside the
// table render as a generic placeholder box annotated with the type string.
//
// # Degradation Policy
//
// Rendering is best-effort: connections with a missing endpoint are skipped
// and unknown types fall back to the placeholder, in both cases without
// failing the pipeline. Every skip and fallback is reported in the
// diagnostic list returned by Build so strict callers can surface them.
package schematic

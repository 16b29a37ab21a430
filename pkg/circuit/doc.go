// Package circuit defines the circuit data model and the line-oriented
// parser that turns a textual description into components and connections.
//
// # Input Grammar
//
// The input is a newline-separated list of declarations. Blank lines and
// lines starting with "//" are ignored. Each remaining line is either a
// component declaration or a connection:
//
//	R1: resistor 330 (250, 100)
//	LED1: led red
//	R1 -> LED1
//
// A component declaration is "<name>: <type> [<value>] [(<x>, <y>)]".
// Names are case-sensitive \w+ tokens, the type is lower-cased for storage,
// the value is an optional [\w.]+ token, and the position is an optional
// pair of non-negative integers. Components without an explicit position are
// placed on a 7-column grid with 100-unit cells starting at (100, 100), in
// parse order.
//
// A connection declaration is "<name> -> <name>". Endpoints are recorded
// verbatim; existence of the referenced components is not checked at parse
// time.
//
// # Parsing vs. Validation
//
// [Parse] is the primary transform: pure, deterministic, and best-effort.
// In the default lenient mode it skips lines that match neither grammar and
// only fails hard on empty input or a component-free result. [Validate] is a
// separate advisory pass that re-scans the same text and reports every
// problem it finds (duplicate names, unknown types, malformed lines,
// dangling connection endpoints) as a list of diagnostics without ever
// blocking the transform.
package circuit

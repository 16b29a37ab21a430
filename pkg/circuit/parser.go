package circuit

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wiretrace/wiretrace/pkg/errors"
)

// Line grammar. Lines are trimmed before matching; blank lines and comment
// lines are dropped first.
var (
	componentRe  = regexp.MustCompile(`^(\w+):\s*(\w+)(?:\s+([\w.]+))?(?:\s+\((\d+),\s*(\d+)\))?$`)
	connectionRe = regexp.MustCompile(`^(\w+)\s*->\s*(\w+)$`)
)

// commentMarker starts a full-line comment.
const commentMarker = "//"

// Auto-position grid for components declared without coordinates.
const (
	GridColumns = 7   // components per row
	GridCell    = 100 // cell size in diagram units
	GridOriginX = 100 // x of column 0
	GridOriginY = 100 // y of row 0
)

// Mode selects how the parser treats lines that match neither grammar.
type Mode int

const (
	// Lenient skips unmatched lines silently. This is the default and the
	// compatible behavior: unrecognized lines produce no record and no error.
	Lenient Mode = iota

	// Strict rejects the first unmatched line with an INVALID_SYNTAX error.
	Strict
)

// AutoPosition returns the grid position for the component at the given
// zero-based parse-order index.
func AutoPosition(index int) (x, y int) {
	return GridOriginX + (index%GridColumns)*GridCell,
		GridOriginY + (index/GridColumns)*GridCell
}

// Parse converts a circuit description into components and connections
// using the default lenient mode.
//
// Parse is pure and deterministic: the same text always yields the same
// result, including auto-assigned positions. It fails with EMPTY_INPUT when
// the trimmed text is empty and with NO_COMPONENTS when parsing completes
// without producing a single component record.
func Parse(text string) (*Circuit, error) {
	return ParseMode(text, Lenient)
}

// ParseMode is Parse with an explicit unmatched-line policy.
func ParseMode(text string, mode Mode) (*Circuit, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrCodeEmptyInput, "circuit description is empty")
	}

	c := &Circuit{}
	byName := make(map[string]int)

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}

		if m := componentRe.FindStringSubmatch(line); m != nil {
			comp := buildComponent(m, len(c.Components))
			if i, seen := byName[comp.Name]; seen {
				// Replace-by-name: the later declaration wins but keeps the
				// original slot, so later auto-position indices are stable.
				if m[4] == "" {
					comp.X, comp.Y = AutoPosition(i)
				}
				c.Components[i] = comp
				continue
			}
			byName[comp.Name] = len(c.Components)
			c.Components = append(c.Components, comp)
			continue
		}

		if m := connectionRe.FindStringSubmatch(line); m != nil {
			c.Connections = append(c.Connections, Connection{From: m[1], To: m[2]})
			continue
		}

		if mode == Strict {
			return nil, errors.New(errors.ErrCodeInvalidSyntax, "line %d: invalid syntax: %q", lineNo+1, line)
		}
	}

	if len(c.Components) == 0 {
		return nil, errors.New(errors.ErrCodeNoComponents, "no components found in circuit description")
	}

	return c, nil
}

// buildComponent assembles a component from a componentRe match. index is the
// auto-position slot used when the declaration carries no usable coordinates.
func buildComponent(m []string, index int) Component {
	comp := Component{
		Name:  m[1],
		Type:  strings.ToLower(m[2]),
		Value: m[3],
	}

	x, errX := strconv.Atoi(m[4])
	y, errY := strconv.Atoi(m[5])
	if m[4] == "" || m[5] == "" || errX != nil || errY != nil {
		comp.X, comp.Y = AutoPosition(index)
	} else {
		comp.X, comp.Y = x, y
	}

	return comp
}

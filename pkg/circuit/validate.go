package circuit

import (
	"fmt"
	"strings"

	"github.com/wiretrace/wiretrace/pkg/errors"
)

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError marks problems a strict caller should block on.
	SeverityError Severity = "error"

	// SeverityWarning marks problems the renderer degrades around.
	SeverityWarning Severity = "warning"
)

// Diagnostic is one advisory finding from [Validate]. Line is 1-based; zero
// means the diagnostic is not tied to a single line.
type Diagnostic struct {
	Line     int         `json:"line,omitempty"`
	Severity Severity    `json:"severity"`
	Code     errors.Code `json:"code"`
	Message  string      `json:"message"`
}

// String formats the diagnostic for terminal output.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", d.Line, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// HasErrors reports whether any diagnostic in the list has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate re-scans text independently of [Parse] and collects one
// diagnostic per offending line: duplicate component names, types outside
// the closed enumeration, lines matching neither grammar, and connections
// referencing undeclared names. An empty result means the text is clean.
//
// Validate never fails and never blocks rendering; it shares no state with
// the primary parse.
func Validate(text string) []Diagnostic {
	var diags []Diagnostic

	type endpoint struct {
		line int
		name string
	}

	seen := make(map[string]int) // name -> first declaring line
	var endpoints []endpoint

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		no := lineNo + 1
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}

		if m := componentRe.FindStringSubmatch(line); m != nil {
			name, typ := m[1], strings.ToLower(m[2])
			if first, dup := seen[name]; dup {
				diags = append(diags, Diagnostic{
					Line:     no,
					Severity: SeverityError,
					Code:     errors.ErrCodeDuplicateName,
					Message:  fmt.Sprintf("duplicate component name %q (first declared on line %d)", name, first),
				})
			} else {
				seen[name] = no
			}
			if !KnownType(typ) {
				diags = append(diags, Diagnostic{
					Line:     no,
					Severity: SeverityWarning,
					Code:     errors.ErrCodeUnknownType,
					Message:  fmt.Sprintf("unknown component type %q, will render as placeholder", typ),
				})
			}
			continue
		}

		if m := connectionRe.FindStringSubmatch(line); m != nil {
			endpoints = append(endpoints,
				endpoint{line: no, name: m[1]},
				endpoint{line: no, name: m[2]})
			continue
		}

		diags = append(diags, Diagnostic{
			Line:     no,
			Severity: SeverityError,
			Code:     errors.ErrCodeInvalidSyntax,
			Message:  fmt.Sprintf("invalid syntax: %q", line),
		})
	}

	for _, ep := range endpoints {
		if _, ok := seen[ep.name]; !ok {
			diags = append(diags, Diagnostic{
				Line:     ep.line,
				Severity: SeverityError,
				Code:     errors.ErrCodeDanglingEndpoint,
				Message:  fmt.Sprintf("connection references undeclared component %q", ep.name),
			})
		}
	}

	return diags
}

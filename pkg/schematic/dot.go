package schematic

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/wiretrace/wiretrace/pkg/circuit"
	"github.com/wiretrace/wiretrace/pkg/errors"
)

// ToDOT converts the circuit's connectivity into Graphviz DOT format: one
// node per component (labeled with name, type, and value) and one edge per
// connection. Connections with a missing endpoint are omitted, matching the
// scene renderer's skip policy. The result can be rendered with [RenderDOT].
func ToDOT(c *circuit.Circuit) string {
	var buf bytes.Buffer
	buf.WriteString("digraph circuit {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.1\"];\n")
	buf.WriteString("\n")

	for _, comp := range c.Components {
		fmt.Fprintf(&buf, "  %q [%s];\n", comp.Name, dotAttrs(comp))
	}

	buf.WriteString("\n")
	for _, conn := range c.Connections {
		if _, ok := c.Component(conn.From); !ok {
			continue
		}
		if _, ok := c.Component(conn.To); !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", conn.From, conn.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotAttrs(comp circuit.Component) string {
	label := comp.Name + "\\n" + comp.Type
	if comp.Value != "" {
		label += " " + comp.Value
	}
	attrs := fmt.Sprintf("label=%q", label)
	if circuit.Families[comp.Type] == circuit.FamilyVirtual {
		attrs += `, style="rounded,filled,dashed", fillcolor=lavender`
	} else if !circuit.KnownType(comp.Type) {
		attrs += `, fillcolor=lightgrey`
	}
	return attrs
}

// RenderDOT renders a DOT graph using the in-process Graphviz engine.
// Supported formats are [graphviz.SVG] and [graphviz.PNG].
func RenderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "render DOT")
	}
	return buf.Bytes(), nil
}

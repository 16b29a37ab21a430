package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/wiretrace/wiretrace/pkg/circuit"
	"github.com/wiretrace/wiretrace/pkg/schematic"
)

// renderFormats generates output artifacts in the requested formats.
//
// The PNG artifact is always rasterized on the fixed export canvas, so zoom
// affects only the SVG presentation size.
func renderFormats(scene *schematic.Scene, c *circuit.Circuit, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = schematic.RenderSVG(scene, svgOptions(opts)...)
		case FormatPNG:
			data, err = schematic.RasterizePNG(schematic.RenderSVG(scene, baseSVGOptions(opts)...))
		case FormatDOT:
			data = []byte(schematic.ToDOT(c))
		case FormatJSON:
			data, err = json.MarshalIndent(scene, "", "  ")
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// svgOptions builds SVG rendering options including presentation zoom.
func svgOptions(opts Options) []schematic.SVGOption {
	svgOpts := baseSVGOptions(opts)
	if opts.Zoom != 0 && opts.Zoom != 1.0 {
		svgOpts = append(svgOpts, schematic.WithSVGZoom(opts.Zoom))
	}
	return svgOpts
}

// baseSVGOptions builds the zoom-independent SVG options shared by the SVG
// artifact and the PNG rasterization source.
func baseSVGOptions(opts Options) []schematic.SVGOption {
	var svgOpts []schematic.SVGOption
	if opts.NoGrid {
		svgOpts = append(svgOpts, schematic.WithoutGrid())
	}
	return svgOpts
}

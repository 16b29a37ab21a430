package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/wiretrace/wiretrace/pkg/pipeline"
	"github.com/wiretrace/wiretrace/pkg/schematic"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string   // output directory (or file path for a single format)
	formats      []string // output formats: "svg", "png", "dot", "json"
	zoom         float64  // SVG presentation zoom factor
	strict       bool     // reject unmatched lines instead of skipping them
	noGrid       bool     // omit the background grid
	gridSpacing  float64  // background grid pitch
	noCache      bool     // disable the artifact cache
	refresh      bool     // bypass the cache for this run
	netlistImage bool     // additionally rasterize the netlist graph via graphviz
}

// renderCommand creates the render command for generating schematic artifacts.
//
// Default settings come from wiretrace.toml when present:
//   - formats: svg
//   - zoom: 1.0 (clamped to [0.5, 3.0])
//   - grid: on, 50px pitch
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a circuit description to schematic artifacts",
		Long: `Render parses a circuit description and writes the requested artifacts:
an SVG schematic, a fixed-size PNG export, the Graphviz netlist, or the
scene JSON. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config supplies defaults; explicit flags win. Config is loaded
			// in PersistentPreRun, after flag defaults were registered.
			cfg := c.Config.Render
			if formatsStr != "" {
				opts.formats = parseFormats(formatsStr)
			} else if len(cfg.Formats) > 0 {
				opts.formats = cfg.Formats
			} else {
				opts.formats = []string{pipeline.FormatSVG}
			}
			if !cmd.Flags().Changed("output") && cfg.Output != "" {
				opts.output = cfg.Output
			}
			if !cmd.Flags().Changed("zoom") && cfg.Zoom != 0 {
				opts.zoom = cfg.Zoom
			}
			if !cmd.Flags().Changed("strict") {
				opts.strict = cfg.Strict
			}
			if !cmd.Flags().Changed("no-grid") {
				opts.noGrid = cfg.NoGrid
			}
			if !cmd.Flags().Changed("grid-spacing") && cfg.GridSpacing != 0 {
				opts.gridSpacing = cfg.GridSpacing
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory, or file path for a single format")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", pipeline.DefaultZoom, "SVG zoom factor, clamped to [0.5, 3.0]")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject lines that match neither grammar")
	cmd.Flags().BoolVar(&opts.noGrid, "no-grid", false, "omit the background grid")
	cmd.Flags().Float64Var(&opts.gridSpacing, "grid-spacing", 0, "background grid pitch in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&opts.netlistImage, "netlist-image", false, "also rasterize the netlist graph to PNG via graphviz")

	return cmd
}

// runRender executes the pipeline and writes each artifact to disk.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	text, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Text:        text,
		Strict:      opts.strict,
		Formats:     opts.formats,
		Zoom:        opts.zoom,
		NoGrid:      opts.noGrid,
		GridSpacing: opts.gridSpacing,
		Refresh:     opts.refresh,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	for _, d := range result.Diagnostics {
		printWarning("%s", d.Message)
	}

	for _, format := range opts.formats {
		path := artifactPath(opts.output, format, len(opts.formats))
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}

	if opts.netlistImage {
		path := filepath.Join(outputDir(opts.output, len(opts.formats)), "circuit-netlist.png")
		if err := c.writeNetlistImage(cmd, result, path); err != nil {
			return err
		}
		printFile(path)
	}

	printStats(result.Stats.ComponentCount, result.Stats.ConnectionCount,
		result.CacheInfo.SceneHit && result.CacheInfo.RenderHit)

	return nil
}

// writeNetlistImage renders the circuit's DOT netlist to a PNG with graphviz.
func (c *CLI) writeNetlistImage(cmd *cobra.Command, result *pipeline.Result, path string) error {
	dot := schematic.ToDOT(result.Circuit)
	data, err := schematic.RenderDOT(cmd.Context(), dot, graphviz.PNG)
	if err != nil {
		return err
	}
	return writeArtifact(path, data)
}

// artifactPath resolves the output path for one format. With a single
// requested format, an --output value carrying an extension is used as the
// file path directly; otherwise artifacts land in the output directory under
// their standard names.
func artifactPath(output, format string, formatCount int) string {
	if formatCount == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return filepath.Join(outputDir(output, formatCount), pipeline.FileName(format))
}

// outputDir resolves the directory artifacts are written into.
func outputDir(output string, formatCount int) string {
	if output == "" {
		return "."
	}
	if formatCount == 1 && filepath.Ext(output) != "" {
		return filepath.Dir(output)
	}
	return output
}

// writeArtifact writes data to path, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wiretrace/wiretrace/pkg/circuit"
	"github.com/wiretrace/wiretrace/pkg/pipeline"
)

// Watch timing. The debounce window collapses editor save bursts into one
// render; the last write wins.
const (
	watchPollInterval = 200 * time.Millisecond
	watchDebounce     = 400 * time.Millisecond
)

// watchCommand creates the watch command: re-render on every save with a
// live status display.
func (c *CLI) watchCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Watch a circuit description and re-render on save",
		Long: `Watch re-renders the given circuit description whenever the file changes,
writing the same artifacts as render. Rapid consecutive saves are debounced;
only the final state is rendered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Render
			if formatsStr != "" {
				opts.formats = parseFormats(formatsStr)
			} else if len(cfg.Formats) > 0 {
				opts.formats = cfg.Formats
			} else {
				opts.formats = []string{pipeline.FormatSVG}
			}
			if !cmd.Flags().Changed("zoom") && cfg.Zoom != 0 {
				opts.zoom = cfg.Zoom
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			model := newWatchModel(cmd.Context(), runner, args[0], &opts)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s), comma-separated")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", pipeline.DefaultZoom, "SVG zoom factor, clamped to [0.5, 3.0]")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject lines that match neither grammar")
	cmd.Flags().BoolVar(&opts.noGrid, "no-grid", false, "omit the background grid")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// =============================================================================
// watchModel - bubbletea model for the watch loop
// =============================================================================

type watchState int

const (
	stateWatching watchState = iota
	statePending
	stateRendering
)

type (
	tickMsg time.Time

	renderDoneMsg struct {
		result   *pipeline.Result
		err      error
		duration time.Duration
	}
)

// watchModel polls the watched file's mtime and drives renders through the
// shared pipeline runner.
type watchModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	input  string
	opts   *renderOpts

	state      watchState
	lastMod    time.Time
	lastChange time.Time
	renders    int
	lastTook   time.Duration
	diags      []circuit.Diagnostic
	stats      pipeline.Stats
	err        error
}

func newWatchModel(ctx context.Context, runner *pipeline.Runner, input string, opts *renderOpts) watchModel {
	return watchModel{
		ctx:    ctx,
		runner: runner,
		input:  input,
		opts:   opts,
		// Zero lastMod forces an initial render as soon as the file stats.
		state: statePending,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(watchPollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.state != stateRendering {
				m.state = stateRendering
				return m, tea.Batch(m.render(), tick())
			}
		}

	case tickMsg:
		if m.state == stateRendering {
			return m, tick()
		}

		info, err := os.Stat(m.input)
		if err != nil {
			m.err = err
			m.state = stateWatching
			return m, tick()
		}

		if info.ModTime().After(m.lastMod) {
			m.lastMod = info.ModTime()
			m.lastChange = time.Time(msg)
			m.state = statePending
		}

		// Debounce: render only after the file has been quiet for the window.
		if m.state == statePending && time.Since(m.lastChange) >= watchDebounce {
			m.state = stateRendering
			return m, tea.Batch(m.render(), tick())
		}
		return m, tick()

	case renderDoneMsg:
		m.state = stateWatching
		m.err = msg.err
		m.lastTook = msg.duration
		if msg.err == nil {
			m.renders++
			m.diags = msg.result.Diagnostics
			m.stats = msg.result.Stats
		}
		return m, nil
	}

	return m, nil
}

// render executes the pipeline and writes artifacts, off the Update loop.
func (m watchModel) render() tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		text, err := readInput(m.input)
		if err != nil {
			return renderDoneMsg{err: err, duration: time.Since(start)}
		}

		result, err := m.runner.Execute(m.ctx, pipeline.Options{
			Text:    text,
			Strict:  m.opts.strict,
			Formats: m.opts.formats,
			Zoom:    m.opts.zoom,
			NoGrid:  m.opts.noGrid,
		})
		if err != nil {
			return renderDoneMsg{err: err, duration: time.Since(start)}
		}

		for _, format := range m.opts.formats {
			path := artifactPath(m.opts.output, format, len(m.opts.formats))
			if err := writeArtifact(path, result.Artifacts[format]); err != nil {
				return renderDoneMsg{err: err, duration: time.Since(start)}
			}
		}

		return renderDoneMsg{result: result, duration: time.Since(start)}
	}
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("wiretrace watch"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.input))
	b.WriteString("\n\n")

	switch {
	case m.state == stateRendering:
		b.WriteString(StyleHighlight.Render("rendering..."))
	case m.err != nil:
		b.WriteString(StyleError.Render(iconError + " " + m.err.Error()))
	case m.renders == 0:
		b.WriteString(StyleDim.Render("waiting for first render"))
	default:
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("%s rendered", iconSuccess)))
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d components · %d connections · %s · #%d",
			m.stats.ComponentCount, m.stats.ConnectionCount,
			m.lastTook.Round(time.Millisecond), m.renders)))
	}
	b.WriteString("\n")

	if len(m.diags) > 0 && m.err == nil {
		b.WriteString("\n")
		b.WriteString(renderDiagnosticsTable(m.diags))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r re-render  q quit"))
	b.WriteString("\n")

	return b.String()
}

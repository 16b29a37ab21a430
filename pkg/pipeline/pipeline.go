// Package pipeline provides the core rendering pipeline for Wiretrace.
//
// This package implements the complete parse → scene → render pipeline that
// can be used by CLI and server components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Turn circuit description text into a circuit model
//  2. Scene: Place symbols and wires on a renderable canvas
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Text:    "R1: resistor 330\nLED1: led\nR1 -> LED1",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse only
//	c, err := runner.Parse(ctx, opts)
//
//	// Scene with existing circuit
//	scene, diags, err := runner.BuildScene(ctx, c, opts)
//
//	// Render with existing scene
//	artifacts, err := runner.Render(ctx, scene, c, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wiretrace/wiretrace/pkg/cache"
	"github.com/wiretrace/wiretrace/pkg/circuit"
	"github.com/wiretrace/wiretrace/pkg/schematic"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultGridSpacing is the background grid pitch in pixels.
	DefaultGridSpacing = 50.0

	// DefaultMinWidth is the minimum canvas width in pixels.
	DefaultMinWidth = 800.0

	// DefaultMinHeight is the minimum canvas height in pixels.
	DefaultMinHeight = 600.0

	// DefaultZoom is the default zoom factor.
	DefaultZoom = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Artifact file names used when writing results to disk.
const (
	FileNameSVG  = "circuit-diagram.svg"
	FileNamePNG  = "circuit-diagram.png"
	FileNameJSON = "circuit-diagram.json"
	FileNameDOT  = "circuit-netlist.dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// FileName returns the artifact file name for a format.
func FileName(format string) string {
	switch format {
	case FormatSVG:
		return FileNameSVG
	case FormatPNG:
		return FileNamePNG
	case FormatDOT:
		return FileNameDOT
	case FormatJSON:
		return FileNameJSON
	default:
		return "circuit-diagram." + format
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Text   string `json:"text"`
	Strict bool   `json:"strict,omitempty"`

	// Scene options
	GridSpacing float64 `json:"grid_spacing,omitempty"`
	MinWidth    float64 `json:"min_width,omitempty"`
	MinHeight   float64 `json:"min_height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Zoom    float64  `json:"zoom,omitempty"`
	NoGrid  bool     `json:"no_grid,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Circuit is the parsed circuit model.
	Circuit *circuit.Circuit

	// TextHash is the content hash of the circuit text.
	TextHash string

	// Scene is the placed scene graph.
	Scene *schematic.Scene

	// Diagnostics lists every degradation applied while building the scene
	// (skipped dangling connections, placeholder symbols).
	Diagnostics []circuit.Diagnostic

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComponentCount  int
	ConnectionCount int
	ParseTime       time.Duration
	SceneTime       time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetSceneDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetSceneDefaults sets default values for scene construction.
func (o *Options) SetSceneDefaults() {
	if o.GridSpacing == 0 {
		o.GridSpacing = DefaultGridSpacing
	}
	if o.MinWidth == 0 {
		o.MinWidth = DefaultMinWidth
	}
	if o.MinHeight == 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	o.Zoom = schematic.ClampZoom(o.Zoom)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ParseMode returns the parser mode selected by the options.
func (o *Options) ParseMode() circuit.Mode {
	if o.Strict {
		return circuit.Strict
	}
	return circuit.Lenient
}

// SceneOptions returns the scene construction options.
func (o *Options) SceneOptions() schematic.Options {
	return schematic.Options{
		GridSpacing: o.GridSpacing,
		MinWidth:    o.MinWidth,
		MinHeight:   o.MinHeight,
	}
}

// SceneKeyOpts returns cache key options for scene construction.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		GridSpacing: o.GridSpacing,
		MinWidth:    o.MinWidth,
		MinHeight:   o.MinHeight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Only the
// options that change a format's bytes go into its key: zoom scales the SVG
// presentation attributes but never the PNG (rasterized from the zoom-free
// base), and the grid toggle is invisible to the DOT and JSON exports.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		GridSpacing: o.GridSpacing,
		MinWidth:    o.MinWidth,
		MinHeight:   o.MinHeight,
	}
	switch format {
	case FormatSVG:
		opts.Zoom = o.Zoom
		opts.NoGrid = o.NoGrid
	case FormatPNG:
		opts.NoGrid = o.NoGrid
	}
	return opts
}

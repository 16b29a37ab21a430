package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wiretrace/wiretrace/pkg/cache"
	"github.com/wiretrace/wiretrace/pkg/circuit"
	"github.com/wiretrace/wiretrace/pkg/observability"
	"github.com/wiretrace/wiretrace/pkg/schematic"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedScene is the cache payload for the scene stage. Diagnostics travel
// with the scene so a cache hit still reports every degradation.
type cachedScene struct {
	Scene       *schematic.Scene     `json:"scene"`
	Diagnostics []circuit.Diagnostic `json:"diagnostics,omitempty"`
}

// Execute runs the complete parse → scene → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	c, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Circuit = c
	result.TextHash = cache.Hash([]byte(opts.Text))
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.ComponentCount = len(c.Components)
	result.Stats.ConnectionCount = len(c.Connections)

	r.Logger.Info("parsed circuit",
		"components", len(c.Components),
		"connections", len(c.Connections),
		"duration", result.Stats.ParseTime)

	// Stage 2: Scene
	sceneStart := time.Now()
	scene, diags, sceneHit, err := r.BuildSceneWithCacheInfo(ctx, c, result.TextHash, opts)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	result.Scene = scene
	result.Diagnostics = diags
	result.Stats.SceneTime = time.Since(sceneStart)
	result.CacheInfo.SceneHit = sceneHit

	for _, d := range diags {
		observability.Diagnostics().OnDiagnostic(ctx, "scene", d)
		r.Logger.Warn("degraded output", "code", d.Code, "detail", d.Message)
	}

	r.Logger.Info("built scene",
		"elements", len(scene.Elements),
		"duration", result.Stats.SceneTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, c, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse turns circuit text into a circuit model. Parsing is pure and cheap,
// so it is never cached.
func (r *Runner) Parse(ctx context.Context, opts Options) (*circuit.Circuit, error) {
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, len(opts.Text))

	c, err := circuit.ParseMode(opts.Text, opts.ParseMode())

	components, connections := 0, 0
	if c != nil {
		components, connections = len(c.Components), len(c.Connections)
	}
	observability.Pipeline().OnParseComplete(ctx, components, connections, time.Since(start), err)

	return c, err
}

// BuildSceneWithCacheInfo builds a scene with caching and returns cache hit info.
// textHash identifies the circuit text the model was parsed from.
func (r *Runner) BuildSceneWithCacheInfo(ctx context.Context, c *circuit.Circuit, textHash string, opts Options) (*schematic.Scene, []circuit.Diagnostic, bool, error) {
	opts.SetSceneDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SceneKey(textHash, opts.SceneKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedScene
			if err := json.Unmarshal(data, &cached); err == nil && cached.Scene != nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return cached.Scene, cached.Diagnostics, true, nil
			}
			// If deserialization fails, fall through to rebuild
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	start := time.Now()
	observability.Pipeline().OnSceneStart(ctx, len(c.Components))

	scene, diags := schematic.Build(c, opts.SceneOptions())

	observability.Pipeline().OnSceneComplete(ctx, len(scene.Elements), time.Since(start), nil)

	// Cache the result
	if data, err := json.Marshal(cachedScene{Scene: scene, Diagnostics: diags}); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLScene); err == nil {
			observability.Cache().OnCacheSet(ctx, "scene", len(data))
		}
	}

	return scene, diags, false, nil
}

// BuildScene is a convenience wrapper that calls BuildSceneWithCacheInfo and
// discards the cache hit info.
func (r *Runner) BuildScene(ctx context.Context, c *circuit.Circuit, opts Options) (*schematic.Scene, []circuit.Diagnostic, error) {
	scene, diags, _, err := r.BuildSceneWithCacheInfo(ctx, c, cache.Hash([]byte(opts.Text)), opts)
	return scene, diags, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene *schematic.Scene, c *circuit.Circuit, opts Options) (map[string][]byte, bool, error) {
	opts.SetSceneDefaults()
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from scene data
	sceneData, err := json.Marshal(scene)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	cacheKeyHash := cache.Hash(sceneData)

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	rendered, err := renderFormats(scene, c, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, scene *schematic.Scene, c *circuit.Circuit, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, scene, c, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridviz/pkg/cache"
	"github.com/matzehuels/gridviz/pkg/grid"
	"github.com/matzehuels/gridviz/pkg/observability"
	"github.com/matzehuels/gridviz/pkg/plan"
	"github.com/matzehuels/gridviz/pkg/render/sink"
	"github.com/matzehuels/gridviz/pkg/render/tree"
)

// artifactTTL bounds how long cached artifacts live. Renders are
// deterministic so entries never go stale; the TTL only caps disk usage.
const artifactTTL = 7 * 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the full pipeline: validate inputs, then render every
// requested format, consulting the artifact cache per format.
//
// The plan is bounds-checked against the grid before any frame is built,
// so a bad plan fails fast instead of mid-animation. Write failures and
// encode failures propagate unwrapped; nothing is retried.
func (r *Runner) Execute(ctx context.Context, g *grid.Grid, p *plan.Plan, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	if err := p.Validate(g); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		CacheHits: make(map[string]bool),
		Stats: Stats{
			Steps:      p.Steps(),
			FrameCount: p.Steps() + 1,
			Boxes:      len(p.Boxes),
		},
	}

	gridHash, planHash, err := inputHashes(g, p)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, p.Steps(), opts.Formats)

	var renderErr error
	for _, format := range opts.Formats {
		data, hit, err := r.renderFormat(ctx, g, p, opts, format, gridHash, planHash)
		if err != nil {
			renderErr = fmt.Errorf("render %s: %w", format, err)
			break
		}
		result.Artifacts[format] = data
		result.CacheHits[format] = hit
	}

	observability.Render().OnRenderComplete(ctx, p.Steps(), opts.Formats, time.Since(start), renderErr)
	if renderErr != nil {
		return nil, renderErr
	}

	r.Logger.Info("rendered plan",
		"steps", result.Stats.Steps,
		"boxes", result.Stats.Boxes,
		"formats", opts.Formats,
		"duration", time.Since(start).Round(time.Millisecond))

	return result, nil
}

// renderFormat produces one artifact, consulting the cache first.
func (r *Runner) renderFormat(ctx context.Context, g *grid.Grid, p *plan.Plan, opts Options, format, gridHash, planHash string) ([]byte, bool, error) {
	key := cache.ArtifactKey(gridHash, planHash, cache.ArtifactKeyOpts{
		Format:  format,
		Scale:   opts.Scale,
		DelayMS: opts.DelayMS,
		Palette: opts.Palette.Key(),
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		opts.Logger.Debug("artifact cache hit", "format", format)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	data, err := renderArtifact(ctx, g, p, opts, format)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, artifactTTL); err != nil {
		// Cache failures never fail the render.
		opts.Logger.Debug("artifact cache write failed", "format", format, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// renderArtifact dispatches one format to its sink.
func renderArtifact(ctx context.Context, g *grid.Grid, p *plan.Plan, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatGIF:
		return sink.RenderGIF(ctx, g, p, opts.Palette, opts.Scale, opts.DelayMS)
	case FormatPNG:
		return sink.RenderFinalPNG(g, p, opts.Palette, opts.Scale)
	case FormatASCII:
		return []byte(sink.TraceString(g, p.Path) + "\n"), nil
	case FormatDOT:
		_, last := plan.BuildStates(p)
		return []byte(tree.ToDOT(last, tree.Options{})), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// inputHashes computes content hashes of the grid and plan for cache keys.
func inputHashes(g *grid.Grid, p *plan.Plan) (gridHash, planHash string, err error) {
	planData, err := json.Marshal(p)
	if err != nil {
		return "", "", fmt.Errorf("hash plan: %w", err)
	}
	return cache.Hash([]byte(g.String())), cache.Hash(planData), nil
}

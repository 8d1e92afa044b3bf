package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sparklines/pkg/cache"
	"github.com/matzehuels/sparklines/pkg/observability"
	"github.com/matzehuels/sparklines/pkg/sink"
	"github.com/matzehuels/sparklines/pkg/sparkline"
	"github.com/matzehuels/sparklines/pkg/sparkline/points"
)

const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute renders the chart into every requested format. Artifacts are
// served from the cache unless opts.Refresh is set. Configuration, value
// and geometry errors are returned rather than rendered as a
// placeholder.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.ID)
	defer func() {
		observability.Render().OnRenderComplete(ctx, opts.ID, opts.Formats, time.Since(start), err)
	}()

	inputHash, hashed := inputHash(opts)
	if hashed && !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, inputHash, opts); ok {
			opts.Logger.Debug("artifacts from cache", "formats", opts.Formats)
			return &Result{
				Artifacts: artifacts,
				Stats:     Stats{Sizes: sizes(artifacts)},
				CacheHit:  true,
			}, nil
		}
	}

	if opts.ID == "" && hashed {
		opts.ID = chartID(inputHash)
	}
	out, hovered, snapshot, err := render(opts)
	if err != nil {
		return nil, err
	}
	artifacts, err := convert(ctx, out, snapshot, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	result = &Result{
		Artifacts: artifacts,
		Points:    out.Points,
		Hovered:   hovered,
		Stats: Stats{
			PointCount: len(out.Points),
			RenderTime: time.Since(start),
			Sizes:      sizes(artifacts),
		},
	}
	opts.Logger.Info("rendered sparkline",
		"sparkline", out.ID,
		"points", len(out.Points),
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if hashed {
		r.store(ctx, inputHash, opts, artifacts)
	}
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup returns the artifacts only when every format is cached.
func (r *Runner) lookup(ctx context.Context, inputHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := cache.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache lookup failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, inputHash string, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		key := cache.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
}

// render draws the chart onto an SVG surface. With HoverAt set the
// pointer is moved before the snapshot is taken.
func render(opts Options) (*sparkline.Output, *points.Point, []byte, error) {
	chartOpts := []sparkline.Option{sparkline.WithLogger(opts.Logger)}
	if opts.ID != "" {
		chartOpts = append(chartOpts, sparkline.WithID(opts.ID))
	}
	surf := sink.NewSVGSurface(sink.WithSize())
	chartOpts = append(chartOpts, sparkline.WithSurface(surf))
	chart := sparkline.New(chartOpts...)

	if err := chart.SetSettings(opts.Settings); err != nil {
		return nil, nil, nil, err
	}
	if err := chart.SetValues(opts.Values); err != nil {
		return nil, nil, nil, err
	}
	out, err := chart.Render()
	if err != nil {
		return nil, nil, nil, err
	}
	if out.State == sparkline.StateError {
		return nil, nil, nil, out.Err
	}

	var hovered *points.Point
	if opts.HoverAt != nil {
		if p, ok := chart.Hover(*opts.HoverAt, 0); ok {
			hovered = &p
		}
	}
	return out, hovered, surf.Bytes(), nil
}

// convert produces every format from one render. rsvg-convert runs are
// slow, so formats are produced concurrently.
func convert(ctx context.Context, out *sparkline.Output, snapshot []byte, opts Options) (map[string][]byte, error) {
	var svgOpts []sink.SVGOption
	if opts.HoverScript {
		svgOpts = append(svgOpts, sink.WithHoverScript())
	}
	svg := sink.RenderSVG(out, append(svgOpts, sink.WithSize())...)
	if opts.HoverAt != nil {
		svg = snapshot
	}

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			var data []byte
			var err error
			switch format {
			case FormatSVG:
				data = svg
			case FormatJSON:
				data, err = sink.RenderJSON(out)
			case FormatPNG:
				if opts.HoverAt != nil {
					data, err = sink.ToPNG(ctx, snapshot, opts.Scale)
				} else {
					data, err = sink.RenderPNG(ctx, out, sink.WithScale(opts.Scale))
				}
			case FormatPDF:
				if opts.HoverAt != nil {
					data, err = sink.ToPDF(ctx, snapshot)
				} else {
					data, err = sink.RenderPDF(ctx, out)
				}
			}
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// inputHash keys the chart by its serialized values and settings. It
// reports false for inputs that cannot be serialized, which then skip
// the cache.
func inputHash(opts Options) (string, bool) {
	values, err := json.Marshal(opts.Values)
	if err != nil {
		return "", false
	}
	props, err := json.Marshal(opts.Settings)
	if err != nil {
		return "", false
	}
	return cache.InputHash(values, []byte(opts.ID+"\x00"+string(props))), true
}

// chartID derives a stable chart id from the input hash, so identical
// inputs produce byte-identical documents.
func chartID(inputHash string) string {
	h := strings.TrimPrefix(inputHash, "input:")
	if len(h) > 12 {
		h = h[:12]
	}
	return h
}

func sizes(artifacts map[string][]byte) map[string]int {
	out := make(map[string]int, len(artifacts))
	for f, data := range artifacts {
		out[f] = len(data)
	}
	return out
}

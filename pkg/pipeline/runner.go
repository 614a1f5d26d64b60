package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jmuviz/sankeyflow/pkg/observability"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
	"github.com/jmuviz/sankeyflow/pkg/sankey/layout"
)

// Runner executes pipeline stages and reports them to the logger and the
// registered observability hooks.
//
// The Runner is stateless except for the logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → adapt → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	docs, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Adapt
	adaptStart := time.Now()
	d, err := r.Adapt(ctx, docs, opts)
	if err != nil {
		return nil, fmt.Errorf("adapt: %w", err)
	}
	result.Diagram = d
	result.Stats.AdaptTime = time.Since(adaptStart)
	result.Stats.NodeCount = d.NodeCount()
	result.Stats.LinkCount = d.LinkCount()

	// Stage 3: Layout (the node-link view is laid out by Graphviz)
	if !opts.IsNodelink() {
		layoutStart := time.Now()
		p, err := r.Layout(ctx, d, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Positioned = p
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.Stats.Columns = p.Columns
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, d, result.Positioned, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// Load reads the input documents.
func (r *Runner) Load(ctx context.Context, opts Options) (*Documents, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Dataset, opts.Paths())

	start := time.Now()
	docs, err := Load(ctx, opts)
	hooks.OnLoadComplete(ctx, opts.Dataset, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded documents",
		"dataset", opts.Dataset,
		"paths", opts.Paths(),
		"duration", time.Since(start))
	return docs, nil
}

// Adapt builds and validates the diagram.
func (r *Runner) Adapt(ctx context.Context, docs *Documents, opts Options) (sankey.Diagram, error) {
	d, err := Adapt(docs, opts)
	observability.Pipeline().OnAdaptComplete(ctx, opts.Dataset, d.NodeCount(), d.LinkCount(), err)
	if err != nil {
		return sankey.Diagram{}, err
	}

	r.Logger.Info("built diagram",
		"dataset", opts.Dataset,
		"nodes", d.NodeCount(),
		"links", d.LinkCount())
	return d, nil
}

// Layout computes the node and link geometry.
func (r *Runner) Layout(ctx context.Context, d sankey.Diagram, opts Options) (*layout.Positioned, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, d.NodeCount(), d.LinkCount())

	start := time.Now()
	p, err := GenerateLayout(d, opts)
	hooks.OnLayoutComplete(ctx, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("computed layout",
		"columns", p.Columns,
		"align", opts.Align,
		"duration", time.Since(start))
	return p, nil
}

// Render generates the artifacts. p may be nil for the node-link view.
func (r *Runner) Render(ctx context.Context, d sankey.Diagram, p *layout.Positioned, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)

	start := time.Now()
	artifacts, err := Render(ctx, d, p, opts)
	hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered outputs",
		"viz", opts.VizType,
		"formats", opts.Formats,
		"duration", time.Since(start))
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

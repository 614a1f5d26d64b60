// Package pipeline provides the render pipeline for sankeyflow.
//
// This package implements the complete load → adapt → layout → render
// pipeline used by every CLI command and by the diagram server. By
// centralizing this logic, every entry point validates, lays out and
// renders a diagram the same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read the JSON documents the chosen dataset needs (concurrently)
//  2. Adapt: Turn the documents into a diagram and validate it
//  3. Layout: Compute node rectangles and link geometry
//  4. Render: Generate output in various formats (SVG, HTML, JSON, PDF, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
// Every failure is terminal and carries a code from pkg/errors.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Dataset: "student-costs",
//	    JMUPath: "data/jmu.json",
//	    Formats: []string{"svg", "html"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jmuviz/sankeyflow/pkg/dataset"
	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/scene"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/sink"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/styles"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
	"github.com/jmuviz/sankeyflow/pkg/sankey/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, config and server
// =============================================================================

const (
	// DefaultDataset is the diagram shape rendered when none is named.
	DefaultDataset = string(dataset.KindStudentCosts)

	// DefaultGenericPath is the default location of the generic dataset.
	DefaultGenericPath = "data/data_sankey.json"

	// DefaultJMUPath is the default location of the university dataset.
	DefaultJMUPath = "data/jmu.json"

	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 928.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultNodeWidth is the default node rectangle width.
	DefaultNodeWidth = 15.0

	// DefaultNodePadding is the default vertical gap between nodes.
	DefaultNodePadding = 10.0

	// DefaultIterations is the default number of relaxation sweeps.
	DefaultIterations = 6

	// DefaultTitle is the default HTML page title.
	DefaultTitle = "Sankey Diagram"
)

// Visualization types.
const (
	VizTypeSankey   = "sankey"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeSankey

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats per visualization type.
var ValidFormats = map[string]map[string]bool{
	VizTypeSankey: {
		FormatSVG:  true,
		FormatHTML: true,
		FormatJSON: true,
		FormatPDF:  true,
		FormatPNG:  true,
	},
	VizTypeNodelink: {
		FormatSVG: true,
		FormatPDF: true,
		FormatPNG: true,
		FormatDOT: true,
	},
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeSankey:   true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
type Options struct {
	// Data options
	Dataset     string `json:"dataset"`
	GenericPath string `json:"generic_path,omitempty"`
	JMUPath     string `json:"jmu_path,omitempty"`
	Residency   string `json:"residency,omitempty"`
	RevenueJoin string `json:"revenue_join,omitempty"`

	// Layout options
	VizType     string   `json:"viz_type,omitempty"`
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	NodeWidth   float64  `json:"node_width,omitempty"`
	NodePadding *float64 `json:"node_padding,omitempty"` // nil selects DefaultNodePadding; 0 is allowed
	Align       string   `json:"align,omitempty"`
	Iterations  int      `json:"iterations,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // Node-link labels add category and value

	// Render options
	Formats     []string `json:"formats,omitempty"`
	LinkColor   string   `json:"link_color,omitempty"`
	Palette     string   `json:"palette,omitempty"`
	Colors      []string `json:"colors,omitempty"` // Custom palette; overrides Palette
	ContainerID string   `json:"container_id,omitempty"`
	Title       string   `json:"title,omitempty"`
	IDPrefix    string   `json:"id_prefix,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the adapted, validated diagram.
	Diagram sankey.Diagram

	// Positioned is the computed layout (nil for the node-link view).
	Positioned *layout.Positioned

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	Columns    int
	LoadTime   time.Duration
	AdaptTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid for a visualization type.
func ValidateFormat(vizType, format string) error {
	if !ValidFormats[vizType][format] {
		if vizType == VizTypeNodelink {
			return sferrors.New(sferrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, pdf, png, dot)", format)
		}
		return sferrors.New(sferrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, html, json, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid for a visualization type.
func ValidateFormats(vizType string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(vizType, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return sferrors.New(sferrors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: sankey, nodelink)", vizType)
	}
	return nil
}

// ValidateDataset checks that a dataset name is valid.
func ValidateDataset(name string) error {
	if !dataset.ValidKinds[dataset.Kind(name)] {
		return sferrors.New(sferrors.ErrCodeInvalidInput, "invalid dataset: %q (must be one of: generic, student-costs, revenue)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills every unset field with its default.
func (o *Options) SetDefaults() {
	if o.Dataset == "" {
		o.Dataset = DefaultDataset
	}
	if o.GenericPath == "" {
		o.GenericPath = DefaultGenericPath
	}
	if o.JMUPath == "" {
		o.JMUPath = DefaultJMUPath
	}
	if o.Residency == "" {
		o.Residency = string(dataset.InState)
	}
	if o.RevenueJoin == "" {
		o.RevenueJoin = string(dataset.JoinProportional)
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodePadding == nil {
		padding := DefaultNodePadding
		o.NodePadding = &padding
	}
	if o.Align == "" {
		o.Align = layout.Justify.String()
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
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
	if o.LinkColor == "" {
		o.LinkColor = string(styles.LinkSourceTarget)
	}
	if o.Palette == "" && len(o.Colors) == 0 {
		o.Palette = "category10"
	}
	if o.ContainerID == "" {
		o.ContainerID = sink.DefaultContainerID
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLoad checks the data options.
func (o *Options) ValidateForLoad() error {
	if err := ValidateDataset(o.Dataset); err != nil {
		return err
	}
	kind := dataset.Kind(o.Dataset)
	if kind.NeedsGeneric() {
		if err := sferrors.ValidatePath(o.GenericPath); err != nil {
			return err
		}
	}
	if kind.NeedsJMU() {
		if err := sferrors.ValidatePath(o.JMUPath); err != nil {
			return err
		}
	}
	return o.DatasetOptions().Validate()
}

// ValidateForLayout sets layout defaults and checks the layout options.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.Width <= 0 || o.Height <= 0 {
		return sferrors.New(sferrors.ErrCodeInvalidInput, "canvas must be positive, got %gx%g", o.Width, o.Height)
	}
	if o.NodeWidth < 0 || *o.NodePadding < 0 || o.Iterations < 0 {
		return sferrors.New(sferrors.ErrCodeInvalidInput, "node width, padding and iterations must not be negative")
	}
	if _, err := layout.ParseAlign(o.Align); err != nil {
		return sferrors.Wrap(sferrors.ErrCodeInvalidInput, err, "invalid align")
	}
	return nil
}

// ValidateForRender sets render defaults and checks the render options.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}
	if len(o.Colors) == 0 {
		if _, err := styles.Palette(o.Palette); err != nil {
			return sferrors.Wrap(sferrors.ErrCodeInvalidInput, err, "invalid palette")
		}
	}
	if err := sferrors.ValidateElementID(o.ContainerID); err != nil {
		return err
	}
	if o.IDPrefix != scene.AutoPrefix {
		if err := sferrors.ValidateIDPrefix(o.IDPrefix); err != nil {
			return err
		}
	}
	return nil
}

// IsNodelink returns true if this is a node-link visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// DatasetOptions returns the adapter options.
func (o *Options) DatasetOptions() dataset.Options {
	return dataset.Options{
		Residency: dataset.Residency(o.Residency),
		Join:      dataset.Join(o.RevenueJoin),
	}
}

// Policy returns the layout policy for the canvas.
func (o *Options) Policy() layout.Policy {
	p := layout.DefaultPolicy(o.Width, o.Height)
	p.NodeWidth = o.NodeWidth
	if o.NodePadding != nil {
		p.NodePadding = *o.NodePadding
	}
	p.Iterations = o.Iterations
	if a, err := layout.ParseAlign(o.Align); err == nil {
		p.Align = a
	}
	return p
}

// ColorPolicy returns a fresh ordinal color scale.
func (o *Options) ColorPolicy() *styles.Ordinal {
	if len(o.Colors) > 0 {
		return styles.NewOrdinal(o.Colors)
	}
	palette, err := styles.Palette(o.Palette)
	if err != nil {
		return styles.NewOrdinal(nil)
	}
	return styles.NewOrdinal(palette)
}

// SceneOptions returns the scene options for the canvas.
func (o *Options) SceneOptions() scene.Options {
	return scene.Options{
		Width:     o.Width,
		Height:    o.Height,
		Colors:    o.ColorPolicy(),
		LinkColor: styles.LinkColor(o.LinkColor),
		IDPrefix:  o.IDPrefix,
	}
}

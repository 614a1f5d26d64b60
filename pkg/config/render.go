package config

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jmuviz/sankeyflow/pkg/pipeline"
)

// Config is the render configuration.
type Config struct {
	Data   DataConfig   `toml:"data" yaml:"data"`
	Canvas CanvasConfig `toml:"canvas" yaml:"canvas"`
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Style  StyleConfig  `toml:"style" yaml:"style"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.Canvas.Validate(); err != nil {
		return err
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if err := c.Style.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}

// DataConfig selects the dataset and its input documents.
type DataConfig struct {
	Dataset   string `toml:"dataset" yaml:"dataset"`
	Generic   string `toml:"generic" yaml:"generic"`
	JMU       string `toml:"jmu" yaml:"jmu"`
	Residency string `toml:"residency" yaml:"residency"`
	Join      string `toml:"join" yaml:"join"`
}

// Validate validates the data section.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dataset, validation.In("generic", "student-costs", "revenue")),
		validation.Field(&c.Residency, validation.In("in-state", "out-of-state")),
		validation.Field(&c.Join, validation.In("proportional", "cross-product")),
	)
}

// CanvasConfig is the drawing area in pixels.
type CanvasConfig struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

// Validate validates the canvas section.
func (c *CanvasConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Width, validation.Min(1.0)),
		validation.Field(&c.Height, validation.Min(1.0)),
	)
}

// LayoutConfig tunes the layout algorithm.
type LayoutConfig struct {
	Viz         string   `toml:"viz" yaml:"viz"`
	NodeWidth   float64  `toml:"node_width" yaml:"node_width"`
	NodePadding *float64 `toml:"node_padding" yaml:"node_padding"`
	Align       string   `toml:"align" yaml:"align"`
	Iterations  int      `toml:"iterations" yaml:"iterations"`
	Detailed    bool     `toml:"detailed" yaml:"detailed"`
}

// Validate validates the layout section.
func (c *LayoutConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Viz, validation.In(pipeline.VizTypeSankey, pipeline.VizTypeNodelink)),
		validation.Field(&c.NodeWidth, validation.Min(0.0)),
		validation.Field(&c.NodePadding, validation.Min(0.0)),
		validation.Field(&c.Align, validation.In("left", "right", "center", "justify")),
		validation.Field(&c.Iterations, validation.Min(0)),
	)
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// StyleConfig controls colors and page chrome.
type StyleConfig struct {
	Palette     string   `toml:"palette" yaml:"palette"`
	Colors      []string `toml:"colors" yaml:"colors"`
	LinkColor   string   `toml:"link_color" yaml:"link_color"`
	Title       string   `toml:"title" yaml:"title"`
	ContainerID string   `toml:"container_id" yaml:"container_id"`
	IDPrefix    string   `toml:"id_prefix" yaml:"id_prefix"`
}

// Validate validates the style section.
func (c *StyleConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Palette, validation.In("category10", "tableau10")),
		validation.Field(&c.Colors, validation.Each(validation.Match(hexColor).Error("must be a #rgb or #rrggbb color"))),
		validation.Field(&c.LinkColor, validation.When(!hexColor.MatchString(c.LinkColor),
			validation.In("source", "target", "source-target").Error("must be source, target, source-target or a #rgb/#rrggbb color"))),
		validation.Field(&c.ContainerID, validation.Length(1, 128)),
	)
}

// OutputConfig names the artifacts to write.
type OutputConfig struct {
	Formats []string `toml:"formats" yaml:"formats"`
	Path    string   `toml:"path" yaml:"path"`
}

// Validate validates the output section.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Formats, validation.Each(validation.In("svg", "html", "json", "pdf", "png", "dot"))),
	)
}

// ApplyTo copies configured values into opts wherever opts is still unset.
func (c *Config) ApplyTo(opts *pipeline.Options) {
	setString(&opts.Dataset, c.Data.Dataset)
	setString(&opts.GenericPath, c.Data.Generic)
	setString(&opts.JMUPath, c.Data.JMU)
	setString(&opts.Residency, c.Data.Residency)
	setString(&opts.RevenueJoin, c.Data.Join)

	setFloat(&opts.Width, c.Canvas.Width)
	setFloat(&opts.Height, c.Canvas.Height)

	setString(&opts.VizType, c.Layout.Viz)
	setFloat(&opts.NodeWidth, c.Layout.NodeWidth)
	if opts.NodePadding == nil && c.Layout.NodePadding != nil {
		padding := *c.Layout.NodePadding
		opts.NodePadding = &padding
	}
	setString(&opts.Align, c.Layout.Align)
	if opts.Iterations == 0 {
		opts.Iterations = c.Layout.Iterations
	}
	opts.Detailed = opts.Detailed || c.Layout.Detailed

	// A palette chosen by flag outranks configured colors.
	flagPalette := opts.Palette != ""
	setString(&opts.Palette, c.Style.Palette)
	if !flagPalette && len(opts.Colors) == 0 && len(c.Style.Colors) > 0 {
		opts.Colors = append([]string(nil), c.Style.Colors...)
	}
	setString(&opts.LinkColor, c.Style.LinkColor)
	setString(&opts.Title, c.Style.Title)
	setString(&opts.ContainerID, c.Style.ContainerID)
	setString(&opts.IDPrefix, c.Style.IDPrefix)

	if len(opts.Formats) == 0 && len(c.Output.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Output.Formats...)
	}
}

func setString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if *dst == 0 {
		*dst = v
	}
}

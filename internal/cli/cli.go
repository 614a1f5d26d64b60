// Package cli implements the sankey command-line interface.
//
// The commands render Sankey diagrams from the bundled JSON datasets:
//   - render: Write SVG, HTML, JSON, PDF or PNG artifacts
//   - layout: Write the computed layout as JSON
//   - inspect: Print the adapted diagram as tables
//   - serve: Render once and serve the result over HTTP
//
// All commands support --verbose (-v) for debug-level logging and --config
// for a TOML or YAML render configuration. A .env file in the working
// directory is loaded before any command runs.
package cli

import (
	"errors"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jmuviz/sankeyflow/pkg/buildinfo"
	"github.com/jmuviz/sankeyflow/pkg/config"
	"github.com/jmuviz/sankeyflow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "sankey"

	// envFile is loaded from the working directory at startup.
	envFile = ".env"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sankey renders flow datasets as Sankey diagrams",
		Long:         `Sankey turns JSON flow datasets into Sankey diagrams: nodes stacked in columns, joined by ribbons whose thickness is proportional to the flow between them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.loadEnv()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "render config file (.toml, .yaml); defaults to $"+config.EnvVar)

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadEnv reads envFile if present. Existing variables are not overwritten.
func (c *CLI) loadEnv() {
	err := godotenv.Load(envFile)
	switch {
	case err == nil:
		c.Logger.Debug("loaded environment", "file", envFile)
	case errors.Is(err, fs.ErrNotExist):
	default:
		c.Logger.Warn("ignoring environment file", "file", envFile, "error", err)
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// resolveOptions layers the config file under the flags that were set and
// attaches the CLI logger. It returns the output path the config names, if any.
func (c *CLI) resolveOptions(opts *pipeline.Options) (string, error) {
	opts.Logger = c.Logger

	path := config.Resolve(c.configPath)
	if path == "" {
		return "", nil
	}

	var cfg config.Config
	if err := config.Load(path, &cfg); err != nil {
		return "", err
	}
	cfg.ApplyTo(opts)
	c.Logger.Debug("applied config", "file", path)
	return cfg.Output.Path, nil
}

// addDataFlags registers the dataset selection flags.
// Flags default to zero so that config values can fill what is left unset.
func addDataFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Dataset, "dataset", "d", "", "dataset: student-costs (default), revenue, generic")
	cmd.Flags().StringVar(&opts.GenericPath, "data", "", "generic dataset file (default "+pipeline.DefaultGenericPath+")")
	cmd.Flags().StringVar(&opts.JMUPath, "jmu", "", "university dataset file (default "+pipeline.DefaultJMUPath+")")
	cmd.Flags().StringVar(&opts.Residency, "residency", "", "student cost column: in-state (default), out-of-state")
	cmd.Flags().StringVar(&opts.RevenueJoin, "join", "", "revenue link values: proportional (default), cross-product")
}

// addLayoutFlags registers the canvas and layout flags.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width (default 928)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height (default 600)")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "node rectangle width (default 15)")
	cmd.Flags().Var(&optionalFloat{p: &opts.NodePadding}, "node-padding", "vertical gap between nodes, 0 allowed (default 10)")
	cmd.Flags().StringVar(&opts.Align, "align", "", "node alignment: justify (default), left, right, center")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "relaxation sweeps (default 6)")
}

// addStyleFlags registers the color and page flags.
func addStyleFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.LinkColor, "link-color", "", "link color: source-target (default), source, target")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "node palette: category10 (default), tableau10")
	cmd.Flags().StringSliceVar(&opts.Colors, "colors", nil, "custom node colors (comma-separated, overrides --palette)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "HTML page title")
	cmd.Flags().StringVar(&opts.ContainerID, "container-id", "", "HTML container element id (default my_dataviz)")
	cmd.Flags().StringVar(&opts.IDPrefix, "id-prefix", "", "gradient id prefix; \"auto\" derives one from the diagram")
}

// optionalFloat is a float flag that stays nil until set, so an explicit
// zero can be told apart from an unset flag.
type optionalFloat struct {
	p **float64
}

func (f *optionalFloat) String() string {
	if f.p == nil || *f.p == nil {
		return ""
	}
	return strconv.FormatFloat(**f.p, 'g', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f.p = &v
	return nil
}

func (f *optionalFloat) Type() string { return "float64" }

// parseFormats parses a comma-separated format string into a slice.
// An empty string leaves the choice to the config file or the default.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

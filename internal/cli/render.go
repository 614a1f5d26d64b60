package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmuviz/sankeyflow/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a dataset as a Sankey diagram",
		Long: `Render a dataset as a Sankey diagram.

The render command loads the dataset, lays it out and writes one file per
requested format. With a single format, -o names the file; with several,
-o is a base path and files are named <base>.<format>.

Formats for the sankey view: svg (default), html, json, pdf, png.
Formats for the node-link view (-t nodelink): svg, pdf, png, dot.
PDF and PNG need rsvg-convert on the PATH.`,
		Example: `  sankey render
  sankey render -d revenue -f svg,html -o out/revenue
  sankey render -d generic --data flows.json --align left -f png
  sankey render -t nodelink --detailed -f dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s), comma-separated (default svg)")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", "", "visualization type: sankey (default), nodelink")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "node-link view: add category and value to node labels")
	addDataFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)
	addStyleFlags(cmd, &opts)

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	configOutput, err := c.resolveOptions(&opts)
	if err != nil {
		return err
	}
	if output == "" {
		output = configOutput
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Dataset))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	written, err := writeArtifacts(result.Artifacts, opts.Formats, output, opts.Dataset)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(written)))

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.Stats.Columns)
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmuviz/sankeyflow/pkg/pipeline"
)

// layoutSuffix names the file written by the layout command.
const layoutSuffix = ".layout.json"

// layoutCommand creates the layout command for exporting computed geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a Sankey layout and write it as JSON",
		Long: `Compute a Sankey layout and write it as JSON.

The layout command runs the pipeline up to the layout stage and writes node
rectangles and link geometry to <dataset>.layout.json (or -o). The file is
the same document 'render -f json' produces.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dataset>.layout.json)")
	addDataFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout computes the layout and writes it.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string) error {
	if _, err := c.resolveOptions(&opts); err != nil {
		return err
	}
	// The layout file always describes the sankey view.
	opts.VizType = pipeline.VizTypeSankey
	opts.Formats = []string{pipeline.FormatJSON}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		output = opts.Dataset + layoutSuffix
	}
	if err := writeFile(output, result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.Stats.Columns)
	printNewline()
	printNextStep("Render", appName+" render -d "+opts.Dataset+" -f svg,html")
	return nil
}

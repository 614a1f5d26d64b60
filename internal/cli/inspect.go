package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmuviz/sankeyflow/pkg/pipeline"
	"github.com/jmuviz/sankeyflow/pkg/sankey/layout"
)

// inspectCommand creates the inspect command for printing a diagram as tables.
func (c *CLI) inspectCommand() *cobra.Command {
	var noLayout bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the nodes and links of a dataset",
		Long: `Print the nodes and links of a dataset.

The inspect command adapts the dataset and prints its nodes and links as
tables. Node values, columns and link widths come from the layout; pass
--no-layout to print the adapted diagram only. Nothing is rendered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), opts, noLayout)
		},
	}

	cmd.Flags().BoolVar(&noLayout, "no-layout", false, "skip the layout stage")
	addDataFlags(cmd, &opts)
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runInspect loads and adapts the dataset, then prints it.
func (c *CLI) runInspect(ctx context.Context, w io.Writer, opts pipeline.Options, noLayout bool) error {
	if _, err := c.resolveOptions(&opts); err != nil {
		return err
	}
	opts.VizType = pipeline.VizTypeSankey
	opts.Formats = nil
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner()
	docs, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	d, err := runner.Adapt(ctx, docs, opts)
	if err != nil {
		return err
	}

	if noLayout {
		nodes := make([][]string, 0, d.NodeCount())
		for i, n := range d.Nodes {
			nodes = append(nodes, []string{strconv.Itoa(i), n.Name, n.DisplayTitle(), n.Category})
		}
		links := make([][]string, 0, d.LinkCount())
		for i, l := range d.Links {
			links = append(links, []string{strconv.Itoa(i), l.Source, l.Target, formatNumber(l.Value)})
		}
		renderTable(w, fmt.Sprintf("Nodes (%d)", len(nodes)), []string{"#", "Name", "Title", "Category"}, nodes, 0)
		renderTable(w, fmt.Sprintf("Links (%d)", len(links)), []string{"#", "Source", "Target", "Value"}, links, 0, 3)
		return nil
	}

	p, err := runner.Layout(ctx, d, opts)
	if err != nil {
		return err
	}
	printPositioned(w, p)
	return nil
}

// printPositioned prints the laid-out nodes and links.
func printPositioned(w io.Writer, p *layout.Positioned) {
	nodes := make([][]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		nodes = append(nodes, []string{
			strconv.Itoa(n.Index),
			n.Name,
			n.Category,
			strconv.Itoa(n.Layer),
			formatNumber(n.Value),
			formatNumber(n.Y0) + "–" + formatNumber(n.Y1),
		})
	}
	links := make([][]string, 0, len(p.Links))
	for _, l := range p.Links {
		links = append(links, []string{
			strconv.Itoa(l.Index),
			l.Source.Name,
			l.Target.Name,
			formatNumber(l.Value),
			formatNumber(l.Width),
		})
	}

	renderTable(w, fmt.Sprintf("Nodes (%d, %d columns)", len(nodes), p.Columns),
		[]string{"#", "Name", "Category", "Column", "Value", "Y"}, nodes, 0, 3, 4)
	renderTable(w, fmt.Sprintf("Links (%d)", len(links)),
		[]string{"#", "Source", "Target", "Value", "Width"}, links, 0, 3, 4)
}

// formatNumber prints v with thousands separators, truncated to two decimals.
func formatNumber(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

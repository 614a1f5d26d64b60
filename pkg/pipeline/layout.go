package pipeline

import (
	"fmt"

	"github.com/jmuviz/sankeyflow/pkg/dataset"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
	"github.com/jmuviz/sankeyflow/pkg/sankey/layout"
)

// Adapt builds the diagram for opts.Dataset and validates it.
// The result shares no memory with docs.
func Adapt(docs *Documents, opts Options) (sankey.Diagram, error) {
	d, err := dataset.Build(dataset.Kind(opts.Dataset), docs.Generic, docs.JMU, opts.DatasetOptions())
	if err != nil {
		return sankey.Diagram{}, err
	}
	if err := d.Validate(); err != nil {
		return sankey.Diagram{}, err
	}
	return d, nil
}

// GenerateLayout positions d on the canvas described by opts.
// Layout works on a copy, so d is left untouched.
func GenerateLayout(d sankey.Diagram, opts Options) (*layout.Positioned, error) {
	p, err := layout.Compute(d.Clone(), opts.Policy())
	if err != nil {
		return nil, fmt.Errorf("%d nodes, %d links: %w", d.NodeCount(), d.LinkCount(), err)
	}
	return p, nil
}

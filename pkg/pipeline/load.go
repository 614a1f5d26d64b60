package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jmuviz/sankeyflow/pkg/dataset"
)

// Documents holds the raw inputs of a run. A document the dataset does not
// need may be nil.
type Documents struct {
	Generic *dataset.GenericDocument
	JMU     *dataset.JMUDocument
}

// Load reads the generic and university documents concurrently. Documents
// the dataset needs must load; the other one is read when possible and
// skipped otherwise. The first required failure cancels the rest.
func Load(ctx context.Context, opts Options) (*Documents, error) {
	kind := dataset.Kind(opts.Dataset)
	docs := &Documents{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := dataset.LoadGeneric(opts.GenericPath)
		if err != nil {
			return optional(opts, kind.NeedsGeneric(), opts.GenericPath, err)
		}
		docs.Generic = doc
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := dataset.LoadJMU(opts.JMUPath)
		if err != nil {
			return optional(opts, kind.NeedsJMU(), opts.JMUPath, err)
		}
		docs.JMU = doc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func optional(opts Options, required bool, path string, err error) error {
	if required {
		return err
	}
	if opts.Logger != nil {
		opts.Logger.Debug("skipping optional document", "path", path, "error", err)
	}
	return nil
}

// Paths returns the document paths the dataset needs.
func (o *Options) Paths() []string {
	kind := dataset.Kind(o.Dataset)
	var paths []string
	if kind.NeedsGeneric() {
		paths = append(paths, o.GenericPath)
	}
	if kind.NeedsJMU() {
		paths = append(paths, o.JMUPath)
	}
	return paths
}

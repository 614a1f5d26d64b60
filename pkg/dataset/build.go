package dataset

import (
	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
)

// Kind names a diagram shape.
type Kind string

const (
	KindGeneric      Kind = "generic"
	KindStudentCosts Kind = "student-costs"
	KindRevenue      Kind = "revenue"
)

// ValidKinds lists the supported kinds.
var ValidKinds = map[Kind]bool{
	KindGeneric:      true,
	KindStudentCosts: true,
	KindRevenue:      true,
}

// NeedsGeneric reports whether k is built from the generic document.
func (k Kind) NeedsGeneric() bool { return k == KindGeneric }

// NeedsJMU reports whether k is built from the university document.
func (k Kind) NeedsJMU() bool { return k == KindStudentCosts || k == KindRevenue }

// Residency selects which tuition column the student-cost adapter reads.
type Residency string

const (
	InState    Residency = "in-state"
	OutOfState Residency = "out-of-state"
)

func (r Residency) cost(c CostRecord) float64 {
	if r == OutOfState {
		return c.OutOfState
	}
	return c.InState
}

// Join selects how revenue items are joined to expense categories.
type Join string

const (
	// JoinProportional splits each revenue across expenses by expense share.
	JoinProportional Join = "proportional"
	// JoinCrossProduct values each link as revenue × expense.
	JoinCrossProduct Join = "cross-product"
)

func (j Join) value(revenue, expense, total float64, n int) float64 {
	if j == JoinCrossProduct {
		return revenue * expense
	}
	if total == 0 {
		return revenue / float64(n)
	}
	return revenue * expense / total
}

// Options tune the university adapters. The zero value reads in-state
// tuition and joins revenues proportionally.
type Options struct {
	Residency Residency
	Join      Join
}

// Validate checks the option values.
func (o Options) Validate() error {
	switch o.Residency {
	case "", InState, OutOfState:
	default:
		return sferrors.New(sferrors.ErrCodeInvalidInput, "invalid residency: %s (must be %s or %s)", o.Residency, InState, OutOfState)
	}
	switch o.Join {
	case "", JoinProportional, JoinCrossProduct:
	default:
		return sferrors.New(sferrors.ErrCodeInvalidInput, "invalid revenue join: %s (must be %s or %s)", o.Join, JoinProportional, JoinCrossProduct)
	}
	return nil
}

// Build adapts the document kind needs. The other document may be nil.
func Build(kind Kind, generic *GenericDocument, jmu *JMUDocument, opts Options) (sankey.Diagram, error) {
	if err := opts.Validate(); err != nil {
		return sankey.Diagram{}, err
	}
	switch kind {
	case KindGeneric:
		if generic == nil {
			return sankey.Diagram{}, missing(kind, "generic")
		}
		return Generic(generic), nil
	case KindStudentCosts:
		if jmu == nil {
			return sankey.Diagram{}, missing(kind, "university")
		}
		return StudentCosts(jmu, opts), nil
	case KindRevenue:
		if jmu == nil {
			return sankey.Diagram{}, missing(kind, "university")
		}
		return Revenue(jmu, opts), nil
	default:
		return sankey.Diagram{}, sferrors.New(sferrors.ErrCodeInvalidInput, "unknown dataset: %s", kind)
	}
}

func missing(kind Kind, doc string) error {
	return sferrors.New(sferrors.ErrCodeDataLoad, "dataset %s needs the %s document", kind, doc)
}

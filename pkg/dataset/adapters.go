package dataset

import (
	"fmt"

	"github.com/jmuviz/sankeyflow/pkg/sankey"
)

// Node names and categories produced by the university adapters.
const (
	StudentNode = "JMU Student"
	FallNode    = "Fall"
	SpringNode  = "Spring"

	OperatingExpenses    = "Operating Expenses"
	NonOperatingExpenses = "Non-operating Expenses"

	CategoryStudent         = "student"
	CategorySemester        = "semester"
	CategoryCost            = "cost"
	CategoryRevenueItem     = "revenue-item"
	CategoryExpenseCategory = "expense-category"
)

// Generic copies a pre-shaped dataset into a diagram. Nodes without a title
// are titled with their name.
func Generic(doc *GenericDocument) sankey.Diagram {
	d := sankey.Diagram{
		Nodes: make([]sankey.Node, len(doc.Nodes)),
		Links: make([]sankey.Link, len(doc.Links)),
	}
	for i, n := range doc.Nodes {
		if n.Title == "" {
			n.Title = n.Name
		}
		d.Nodes[i] = n
	}
	copy(d.Links, doc.Links)
	return d
}

// StudentCosts builds the student → semester → cost diagram.
//
// The diagram has a root node, one node per semester (Fall, Spring) and one
// node per cost record, with root → semester links of value 1 and
// semester → cost links valued by the record's tuition for opts.Residency.
// Records whose semester is not "Fall" are attributed to Spring.
//
// A cost item that appears under both semesters gets one node per semester,
// named "<item> (<semester>)". Items listed twice under the same semester are
// kept as-is, for [sankey.Diagram.Validate] to reject.
func StudentCosts(doc *JMUDocument, opts Options) sankey.Diagram {
	costs := doc.StudentCosts
	d := sankey.Diagram{
		Nodes: make([]sankey.Node, 0, 3+len(costs)),
		Links: make([]sankey.Link, 0, 2+len(costs)),
	}

	d.Nodes = append(d.Nodes, sankey.Node{Name: StudentNode, Title: StudentNode, Category: CategoryStudent})
	for _, s := range []string{FallNode, SpringNode} {
		d.Nodes = append(d.Nodes, sankey.Node{Name: s, Title: s, Category: CategorySemester})
		d.Links = append(d.Links, sankey.Link{Source: StudentNode, Target: s, Value: 1})
	}

	shared := sharedItems(costs)
	for _, c := range costs {
		period := periodOf(c)
		title := fmt.Sprintf("%s (%s)", c.Name, c.Semester)
		name := c.Name
		if shared[c.Name] {
			name = fmt.Sprintf("%s (%s)", c.Name, period)
		}
		d.Nodes = append(d.Nodes, sankey.Node{Name: name, Title: title, Category: CategoryCost})
		d.Links = append(d.Links, sankey.Link{Source: period, Target: name, Value: opts.Residency.cost(c)})
	}
	return d
}

func periodOf(c CostRecord) string {
	if c.Semester == FallNode {
		return FallNode
	}
	return SpringNode
}

// sharedItems reports the item names that occur under more than one semester.
func sharedItems(costs []CostRecord) map[string]bool {
	periods := make(map[string]string, len(costs))
	shared := make(map[string]bool)
	for _, c := range costs {
		p := periodOf(c)
		if prev, ok := periods[c.Name]; ok && prev != p {
			shared[c.Name] = true
		}
		periods[c.Name] = p
	}
	return shared
}

// Revenue builds the revenue → expense diagram: one node per revenue item,
// one node per expense category and a link for every (revenue, expense)
// pair, valued according to opts.Join.
//
// Without a "jmu-expenses" table the expense side is the fixed pair
// "Operating Expenses" and "Non-operating Expenses", each weighted 1.
func Revenue(doc *JMUDocument, opts Options) sankey.Diagram {
	expenses := doc.Expenses
	if len(expenses) == 0 {
		expenses = []ExpenseRecord{
			{Name: OperatingExpenses, Value: 1},
			{Name: NonOperatingExpenses, Value: 1},
		}
	}

	d := sankey.Diagram{
		Nodes: make([]sankey.Node, 0, len(doc.Revenues)+len(expenses)),
		Links: make([]sankey.Link, 0, len(doc.Revenues)*len(expenses)),
	}
	for _, r := range doc.Revenues {
		d.Nodes = append(d.Nodes, sankey.Node{Name: r.Name, Title: r.Name, Category: CategoryRevenueItem})
	}
	for _, e := range expenses {
		d.Nodes = append(d.Nodes, sankey.Node{Name: e.Name, Title: e.Name, Category: CategoryExpenseCategory})
	}

	var total float64
	for _, e := range expenses {
		total += e.Value
	}
	for _, r := range doc.Revenues {
		for _, e := range expenses {
			d.Links = append(d.Links, sankey.Link{
				Source: r.Name,
				Target: e.Name,
				Value:  opts.Join.value(r.Value, e.Value, total, len(expenses)),
			})
		}
	}
	return d
}

package dataset

import (
	"errors"
	"reflect"
	"testing"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
)

func TestStudentCostsExample(t *testing.T) {
	doc := &JMUDocument{StudentCosts: []CostRecord{
		{Name: "Tuition", Semester: "Fall", InState: 5000, OutOfState: 14000},
		{Name: "Housing", Semester: "Spring", InState: 6000, OutOfState: 6000},
	}}

	d := StudentCosts(doc, Options{})

	wantNodes := []string{"JMU Student", "Fall", "Spring", "Tuition", "Housing"}
	var gotNodes []string
	for _, n := range d.Nodes {
		gotNodes = append(gotNodes, n.Name)
	}
	if !reflect.DeepEqual(gotNodes, wantNodes) {
		t.Errorf("nodes = %v, want %v", gotNodes, wantNodes)
	}

	wantLinks := []sankey.Link{
		{Source: "JMU Student", Target: "Fall", Value: 1},
		{Source: "JMU Student", Target: "Spring", Value: 1},
		{Source: "Fall", Target: "Tuition", Value: 5000},
		{Source: "Spring", Target: "Housing", Value: 6000},
	}
	if !reflect.DeepEqual(d.Links, wantLinks) {
		t.Errorf("links = %v, want %v", d.Links, wantLinks)
	}

	if got := d.Nodes[3].Title; got != "Tuition (Fall)" {
		t.Errorf("Tuition title = %q, want %q", got, "Tuition (Fall)")
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStudentCostsCounts(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		doc := &JMUDocument{}
		for i := range n {
			sem := "Fall"
			if i%2 == 1 {
				sem = "Spring"
			}
			doc.StudentCosts = append(doc.StudentCosts, CostRecord{
				Name:     string(rune('a' + i)),
				Semester: sem,
				InState:  float64(100 * (i + 1)),
			})
		}
		d := StudentCosts(doc, Options{})
		if d.NodeCount() != 3+n {
			t.Errorf("N=%d: %d nodes, want %d", n, d.NodeCount(), 3+n)
		}
		if d.LinkCount() != 2+n {
			t.Errorf("N=%d: %d links, want %d", n, d.LinkCount(), 2+n)
		}
		if err := d.Validate(); err != nil {
			t.Errorf("N=%d: Validate: %v", n, err)
		}
	}
}

func TestStudentCostsResidency(t *testing.T) {
	doc := &JMUDocument{StudentCosts: []CostRecord{
		{Name: "Tuition", Semester: "Fall", InState: 5000, OutOfState: 14000},
	}}
	tests := []struct {
		residency Residency
		want      float64
	}{
		{"", 5000},
		{InState, 5000},
		{OutOfState, 14000},
	}
	for _, tt := range tests {
		d := StudentCosts(doc, Options{Residency: tt.residency})
		if got := d.Links[2].Value; got != tt.want {
			t.Errorf("residency %q: value = %v, want %v", tt.residency, got, tt.want)
		}
	}
}

func TestStudentCostsSemesters(t *testing.T) {
	doc := &JMUDocument{StudentCosts: []CostRecord{
		{Name: "Books", Semester: "Fall", InState: 600},
		{Name: "Books", Semester: "Spring", InState: 400},
		{Name: "Camp", Semester: "Summer", InState: 900},
	}}
	d := StudentCosts(doc, Options{})

	wantLinks := []sankey.Link{
		{Source: "JMU Student", Target: "Fall", Value: 1},
		{Source: "JMU Student", Target: "Spring", Value: 1},
		{Source: "Fall", Target: "Books (Fall)", Value: 600},
		{Source: "Spring", Target: "Books (Spring)", Value: 400},
		{Source: "Spring", Target: "Camp", Value: 900},
	}
	if !reflect.DeepEqual(d.Links, wantLinks) {
		t.Errorf("links = %v, want %v", d.Links, wantLinks)
	}
	if got := d.Nodes[5].Title; got != "Camp (Summer)" {
		t.Errorf("Camp title = %q", got)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStudentCostsDuplicateInSemester(t *testing.T) {
	doc := &JMUDocument{StudentCosts: []CostRecord{
		{Name: "Books", Semester: "Fall", InState: 600},
		{Name: "Books", Semester: "Fall", InState: 400},
	}}
	err := StudentCosts(doc, Options{}).Validate()
	if !errors.Is(err, sankey.ErrDuplicateName) {
		t.Fatalf("Validate error = %v, want ErrDuplicateName", err)
	}
}

func TestStudentCostsPure(t *testing.T) {
	doc := &JMUDocument{StudentCosts: []CostRecord{
		{Name: "Tuition", Semester: "Fall", InState: 5000},
		{Name: "Housing", Semester: "Spring", InState: 6000},
	}}
	before := *doc
	before.StudentCosts = append([]CostRecord(nil), doc.StudentCosts...)

	a := StudentCosts(doc, Options{})
	b := StudentCosts(doc, Options{})
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated runs differ")
	}
	if !reflect.DeepEqual(*doc, before) {
		t.Error("adapter modified its input")
	}
}

func TestRevenue(t *testing.T) {
	doc := &JMUDocument{
		Revenues: []RevenueRecord{{Name: "Tuition and Fees", Value: 300}, {Name: "State Appropriations", Value: 100}},
		Expenses: []ExpenseRecord{{Name: "Instruction", Value: 3}, {Name: "Auxiliary", Value: 1}},
	}

	tests := []struct {
		name string
		join Join
		want []float64
	}{
		{"proportional by default", "", []float64{225, 75, 75, 25}},
		{"proportional", JoinProportional, []float64{225, 75, 75, 25}},
		{"cross product", JoinCrossProduct, []float64{900, 300, 300, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Revenue(doc, Options{Join: tt.join})
			if d.NodeCount() != 4 {
				t.Fatalf("%d nodes, want 4", d.NodeCount())
			}
			var got []float64
			for _, l := range d.Links {
				got = append(got, l.Value)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %v, want %v", got, tt.want)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestRevenueDefaultExpenses(t *testing.T) {
	doc := &JMUDocument{Revenues: []RevenueRecord{{Name: "Grants", Value: 50}}}
	d := Revenue(doc, Options{})

	want := []sankey.Node{
		{Name: "Grants", Title: "Grants", Category: CategoryRevenueItem},
		{Name: OperatingExpenses, Title: OperatingExpenses, Category: CategoryExpenseCategory},
		{Name: NonOperatingExpenses, Title: NonOperatingExpenses, Category: CategoryExpenseCategory},
	}
	if !reflect.DeepEqual(d.Nodes, want) {
		t.Errorf("nodes = %v, want %v", d.Nodes, want)
	}
	for _, l := range d.Links {
		if l.Value != 25 {
			t.Errorf("%s → %s = %v, want 25", l.Source, l.Target, l.Value)
		}
	}
}

func TestRevenueZeroExpenses(t *testing.T) {
	doc := &JMUDocument{
		Revenues: []RevenueRecord{{Name: "Grants", Value: 90}},
		Expenses: []ExpenseRecord{{Name: "A"}, {Name: "B"}, {Name: "C"}},
	}
	for _, l := range Revenue(doc, Options{}).Links {
		if l.Value != 30 {
			t.Errorf("%s → %s = %v, want 30", l.Source, l.Target, l.Value)
		}
	}
}

func TestGeneric(t *testing.T) {
	doc := &GenericDocument{
		Nodes: []sankey.Node{{Name: "a", Category: "x"}, {Name: "b", Title: "Bee"}},
		Links: []sankey.Link{{Source: "a", Target: "b", Value: 2}},
	}
	d := Generic(doc)

	if d.Nodes[0].Title != "a" {
		t.Errorf("default title = %q, want %q", d.Nodes[0].Title, "a")
	}
	if d.Nodes[1].Title != "Bee" {
		t.Errorf("explicit title = %q, want %q", d.Nodes[1].Title, "Bee")
	}
	if doc.Nodes[0].Title != "" {
		t.Error("Generic modified its input")
	}

	d.Links[0].Value = 99
	if doc.Links[0].Value != 2 {
		t.Error("diagram shares link storage with the document")
	}
}

func TestBuild(t *testing.T) {
	generic := &GenericDocument{
		Nodes: []sankey.Node{{Name: "a"}, {Name: "b"}},
		Links: []sankey.Link{{Source: "a", Target: "b", Value: 1}},
	}
	jmu := &JMUDocument{
		StudentCosts: []CostRecord{{Name: "Tuition", Semester: "Fall", InState: 1}},
		Revenues:     []RevenueRecord{{Name: "Grants", Value: 1}},
	}

	tests := []struct {
		name      string
		kind      Kind
		generic   *GenericDocument
		jmu       *JMUDocument
		opts      Options
		wantNodes int
		wantCode  sferrors.Code
	}{
		{name: "generic", kind: KindGeneric, generic: generic, wantNodes: 2},
		{name: "student costs", kind: KindStudentCosts, jmu: jmu, wantNodes: 4},
		{name: "revenue", kind: KindRevenue, jmu: jmu, wantNodes: 3},
		{name: "missing generic", kind: KindGeneric, jmu: jmu, wantCode: sferrors.ErrCodeDataLoad},
		{name: "missing jmu", kind: KindRevenue, generic: generic, wantCode: sferrors.ErrCodeDataLoad},
		{name: "unknown kind", kind: "pie", generic: generic, wantCode: sferrors.ErrCodeInvalidInput},
		{name: "bad residency", kind: KindStudentCosts, jmu: jmu, opts: Options{Residency: "abroad"}, wantCode: sferrors.ErrCodeInvalidInput},
		{name: "bad join", kind: KindRevenue, jmu: jmu, opts: Options{Join: "outer"}, wantCode: sferrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Build(tt.kind, tt.generic, tt.jmu, tt.opts)
			if tt.wantCode != "" {
				if got := sferrors.GetCode(err); got != tt.wantCode {
					t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if d.NodeCount() != tt.wantNodes {
				t.Errorf("%d nodes, want %d", d.NodeCount(), tt.wantNodes)
			}
		})
	}
}

func TestKindNeeds(t *testing.T) {
	if !KindGeneric.NeedsGeneric() || KindGeneric.NeedsJMU() {
		t.Error("generic should need only the generic document")
	}
	for _, k := range []Kind{KindStudentCosts, KindRevenue} {
		if k.NeedsGeneric() || !k.NeedsJMU() {
			t.Errorf("%s should need only the university document", k)
		}
	}
}

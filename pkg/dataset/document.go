package dataset

import (
	"encoding/json"
	"io"
	"os"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/sankey"
)

// GenericDocument is a dataset that is already shaped as a diagram.
type GenericDocument struct {
	Nodes []sankey.Node `json:"nodes"`
	Links []sankey.Link `json:"links"`
}

// JMUDocument holds the university cost and revenue tables.
type JMUDocument struct {
	StudentCosts []CostRecord    `json:"student-costs"`
	Revenues     []RevenueRecord `json:"jmu-revenues"`
	Expenses     []ExpenseRecord `json:"jmu-expenses,omitempty"`
}

// CostRecord is one itemized student cost for a semester.
type CostRecord struct {
	Name       string  `json:"name"`
	Semester   string  `json:"semester"`
	InState    float64 `json:"in-state"`
	OutOfState float64 `json:"out-of-state"`
}

// RevenueRecord is one university revenue line.
type RevenueRecord struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ExpenseRecord is one university expense category.
type ExpenseRecord struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ReadGeneric decodes a [GenericDocument] from r. It does not close r.
func ReadGeneric(r io.Reader) (*GenericDocument, error) {
	doc, err := decode[GenericDocument](r)
	if err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeDataLoad, err, "decode generic dataset")
	}
	return doc, nil
}

// ReadJMU decodes a [JMUDocument] from r. It does not close r.
func ReadJMU(r io.Reader) (*JMUDocument, error) {
	doc, err := decode[JMUDocument](r)
	if err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeDataLoad, err, "decode university dataset")
	}
	return doc, nil
}

// LoadGeneric reads the generic dataset at path.
func LoadGeneric(path string) (*GenericDocument, error) {
	return load[GenericDocument](path)
}

// LoadJMU reads the university dataset at path.
func LoadJMU(path string) (*JMUDocument, error) {
	return load[JMUDocument](path)
}

func load[T any](path string) (*T, error) {
	if err := sferrors.ValidatePath(path); err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeDataLoad, err, "load dataset")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeDataLoad, err, "open %s", path)
	}
	defer f.Close()

	doc, err := decode[T](f)
	if err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeDataLoad, err, "decode %s", path)
	}
	return doc, nil
}

func decode[T any](r io.Reader) (*T, error) {
	var doc T
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

package render

import (
	"testing"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
)

func TestConvertMissingTool(t *testing.T) {
	old := converter
	converter = "sankeyflow-no-such-converter"
	t.Cleanup(func() { converter = old })

	if Available() {
		t.Fatal("Available() = true for a missing tool")
	}
	_, err := ToPDF([]byte("<svg/>"))
	if !sferrors.Is(err, sferrors.ErrCodeUnsupported) {
		t.Errorf("ToPDF error = %v, want UNSUPPORTED", err)
	}
	_, err = ToPNG([]byte("<svg/>"), 2)
	if !sferrors.Is(err, sferrors.ErrCodeUnsupported) {
		t.Errorf("ToPNG error = %v, want UNSUPPORTED", err)
	}
}

func TestToPNGScale(t *testing.T) {
	_, err := ToPNG([]byte("<svg/>"), 0)
	if !sferrors.Is(err, sferrors.ErrCodeInvalidInput) {
		t.Errorf("ToPNG(scale 0) error = %v, want INVALID_INPUT", err)
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	pdf, err := ToPDF(svg)
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Errorf("output does not look like a PDF: %q", pdf[:min(len(pdf), 16)])
	}
}

package styles

import (
	"reflect"
	"testing"
)

func TestOrdinal(t *testing.T) {
	o := NewOrdinal([]string{"red", "green"})

	seq := []struct{ category, want string }{
		{"cost", "red"},
		{"semester", "green"},
		{"cost", "red"},
		{"student", "red"}, // wraps around
		{"semester", "green"},
	}
	for _, s := range seq {
		if got := o.Color(s.category); got != s.want {
			t.Errorf("Color(%q) = %q, want %q", s.category, got, s.want)
		}
	}
	if got, want := o.Domain(), []string{"cost", "semester", "student"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Domain() = %v, want %v", got, want)
	}
}

func TestOrdinalDeterministic(t *testing.T) {
	cats := []string{"student", "semester", "semester", "cost", "cost", "cost"}
	a, b := NewOrdinal(nil), NewOrdinal(nil)
	for _, c := range cats {
		if ca, cb := a.Color(c), b.Color(c); ca != cb {
			t.Errorf("Color(%q) = %q and %q", c, ca, cb)
		}
	}
	if got := a.Color("student"); got != Category10[0] {
		t.Errorf("first category = %q, want %q", got, Category10[0])
	}
}

func TestPalette(t *testing.T) {
	p, err := Palette("")
	if err != nil || !reflect.DeepEqual(p, Category10) {
		t.Errorf("Palette(\"\") = %v, %v", p, err)
	}
	p[0] = "#000000"
	if Category10[0] == "#000000" {
		t.Error("Palette returned the shared slice")
	}
	if _, err := Palette("tableau10"); err != nil {
		t.Errorf("Palette(tableau10): %v", err)
	}
	if _, err := Palette("rainbow"); err == nil {
		t.Error("Palette(rainbow) succeeded")
	}
}

func TestLinkColor(t *testing.T) {
	tests := []struct {
		mode     LinkColor
		gradient bool
		stroke   string
	}{
		{"", true, ""},
		{LinkSourceTarget, true, ""},
		{LinkSource, false, "#src"},
		{LinkTarget, false, "#dst"},
		{"#aaa", false, "#aaa"},
	}
	for _, tt := range tests {
		if got := tt.mode.Gradient(); got != tt.gradient {
			t.Errorf("%q.Gradient() = %v, want %v", tt.mode, got, tt.gradient)
		}
		if tt.gradient {
			continue
		}
		if got := tt.mode.Stroke("#src", "#dst"); got != tt.stroke {
			t.Errorf("%q.Stroke() = %q, want %q", tt.mode, got, tt.stroke)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) string
		in   float64
		want string
	}{
		{"value thousands", FormatValue, 1234567, "1,234,567"},
		{"value rounds", FormatValue, 5000.6, "5,001"},
		{"value small", FormatValue, 1, "1"},
		{"value zero", FormatValue, 0.4, "0"},
		{"value past int64", FormatValue, 1e19, "10,000,000,000,000,000,000"},
		{"value near int64 max", FormatValue, 9.3e18, "9,300,000,000,000,000,000"},
		{"raw integer", FormatRaw, 5000, "5000"},
		{"raw fraction", FormatRaw, 12.5, "12.5"},
		{"coord", FormatCoord, 10.456, "10.46"},
		{"coord integer", FormatCoord, 15, "15"},
		{"coord negative zero", FormatCoord, -0.001, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`Fees & "Books" <x>`); got != "Fees &amp; &#34;Books&#34; &lt;x&gt;" {
		t.Errorf("EscapeXML = %q", got)
	}
}

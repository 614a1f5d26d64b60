package styles

import (
	"bytes"
	"encoding/xml"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatValue formats v with no decimals and thousands separators.
// It formats the float directly, so values beyond the int64 range keep
// their magnitude.
func FormatValue(v float64) string {
	r := math.Round(v)
	if r == 0 {
		return "0"
	}
	return humanize.Commaf(r)
}

// FormatRaw formats v in its shortest exact decimal form.
func FormatRaw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCoord formats a coordinate rounded to two decimals, without
// trailing zeros.
func FormatCoord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

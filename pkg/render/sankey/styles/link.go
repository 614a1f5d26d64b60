package styles

// LinkColor selects how link strokes are colored. Any value other than the
// named modes is used as a literal stroke color.
type LinkColor string

const (
	LinkSource       LinkColor = "source"
	LinkTarget       LinkColor = "target"
	LinkSourceTarget LinkColor = "source-target" // Gradient, the default
)

// Gradient reports whether links are stroked with a source→target gradient.
func (c LinkColor) Gradient() bool {
	return c == "" || c == LinkSourceTarget
}

// Stroke returns the stroke for a link whose endpoints are colored
// source and target. It must not be called for gradient links.
func (c LinkColor) Stroke(source, target string) string {
	switch c {
	case LinkSource:
		return source
	case LinkTarget:
		return target
	default:
		return string(c)
	}
}

package sink

import (
	"bytes"
	"html/template"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
	"github.com/jmuviz/sankeyflow/pkg/render/sankey/scene"
)

// DefaultContainerID is the id of the element the diagram is appended to.
const DefaultContainerID = "my_dataviz"

// compiledPage is parsed at init time to fail fast on template errors.
var compiledPage = template.Must(template.New("page").Parse(pageTemplate))

// HTMLOptions configures [RenderHTML].
type HTMLOptions struct {
	Title       string // Page title; defaults to "Sankey Diagram"
	ContainerID string // Host element id; defaults to DefaultContainerID
}

type pageData struct {
	Title       string
	ContainerID string
	SVG         template.HTML
}

// RenderHTML writes a standalone page with the SVG for s appended inside
// the container element.
func RenderHTML(s scene.Scene, opts HTMLOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Sankey Diagram"
	}
	if opts.ContainerID == "" {
		opts.ContainerID = DefaultContainerID
	}
	if err := sferrors.ValidateElementID(opts.ContainerID); err != nil {
		return nil, err
	}

	data := pageData{
		Title:       opts.Title,
		ContainerID: opts.ContainerID,
		SVG:         template.HTML(RenderSVG(s)),
	}

	var buf bytes.Buffer
	if err := compiledPage.Execute(&buf, data); err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeInternal, err, "render html page")
	}
	return buf.Bytes(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 16px; font-family: sans-serif; }
  </style>
</head>
<body>
  <div id="{{.ContainerID}}">
{{.SVG}}  </div>
</body>
</html>
`

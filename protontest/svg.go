package protontest

import (
	"html/template"
	"io"

	"github.com/rjkroege/proton/geom"
)

var tmpl = template.Must(template.New("svg").Parse(svgtemplate))

const svgtemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Size.W}}" height="{{.Size.H}}" viewBox="0 0 {{.Size.W}} {{.Size.H}}">
<rect x="0" y="0" width="{{.Size.W}}" height="{{.Size.H}}" fill="white"/>
{{range .Shapes}}{{if eq .Kind "path"}}<path d="{{.Path}}" fill="{{.Fill}}" stroke="{{.Stroke}}"{{if .Width}} stroke-width="{{.Width}}"{{end}}/>
{{else if eq .Kind "image"}}<rect x="{{.Rect.X}}" y="{{.Rect.Y}}" width="{{.Rect.W}}" height="{{.Rect.H}}" fill="none" stroke="{{.Stroke}}"/>
{{else if eq .Kind "text"}}<text x="{{.Rect.X}}" y="{{.Rect.Y}}" font-size="{{.Size}}" fill="{{.Fill}}">{{.Text}}</text>
{{end}}{{end}}</svg>
`

type svgargs struct {
	Size   geom.Size
	Shapes []shape
}

func writeSVG(w io.Writer, size geom.Size, shapes []shape) error {
	return tmpl.Execute(w, svgargs{Size: size, Shapes: shapes})
}

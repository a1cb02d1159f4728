package html

import (
	"html/template"
	"strings"

	"github.com/ardnew/quark/lang"
	"github.com/ardnew/quark/pkg"
)

const mathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="generator" content="{{.Generator}}">
<title>{{.Title}}</title>
{{- if .CSS}}
<style>{{.CSS}}</style>
{{- end}}
{{- if .Math}}
<script>window.MathJax = {tex: {inlineMath: [['\\(', '\\)']], displayMath: [['$$', '$$']]}};</script>
<script async src="{{.MathJax}}"></script>
{{- end}}
</head>
<body{{if .Presentation}} class="slides"{{end}}>
{{.Body}}
{{- if .Presentation}}
<script>const slidesConfig = {{.Slides}};</script>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Generator    string
	Title        string
	CSS          template.CSS
	Math         bool
	MathJax      string
	Slides       map[string]any
	Presentation bool
	Body         template.HTML
}

// Wrap embeds body in a complete HTML page. The page title is the text of
// the first heading passed to the preceding Render, MathJax is loaded if
// the document contains math, and slides settings are emitted as a
// script object.
func (r *Renderer) Wrap(c *lang.Context, body string) (string, error) {
	r.mu.Lock()
	doc := r.doc
	r.mu.Unlock()

	data := pageData{
		Generator:    pkg.Name + " " + pkg.Version(),
		Title:        doc.title,
		Math:         c.HasMath(),
		MathJax:      mathJaxURL,
		Slides:       slidesConfig(doc.slides),
		Presentation: doc.slides != nil,
		Body:         template.HTML(body), //nolint:gosec
	}

	if data.Title == "" {
		data.Title = pkg.Name
	}

	if doc.highlighted {
		var css strings.Builder
		if err := r.formatter.WriteCSS(&css, r.style); err != nil {
			return "", ErrHighlight.Wrap(err)
		}

		data.CSS = template.CSS(css.String()) //nolint:gosec
	}

	var b strings.Builder
	if err := page.Execute(&b, data); err != nil {
		return "", err
	}

	return b.String(), nil
}

// slidesConfig converts the settings to the object literal read by the
// presentation script. Unset fields are omitted.
func slidesConfig(s *lang.SlidesConfiguration) map[string]any {
	if s == nil {
		return nil
	}

	m := map[string]any{}

	if s.Center != nil {
		m["center"] = *s.Center
	}

	if s.Controls != nil {
		m["controls"] = *s.Controls
	}

	if s.Transition != nil {
		m["transition"] = s.Transition.Style
		m["transitionSpeed"] = s.Transition.Speed
	}

	return m
}

package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded page templates. The gin engine is handed
// the result once at startup via SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

package templates

import (
	"embed"
	"html/template"
	"io"
)

//go:embed html/*.html
var templatesFS embed.FS

var pages = template.Must(template.New("").Funcs(funcMap).ParseFS(templatesFS, "html/*.html"))

// Render writes the named page template with the given data.
func Render(w io.Writer, name string, data interface{}) error {
	return pages.ExecuteTemplate(w, name, data)
}

package http

import (
	"html/template"
	"io"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer plugs html/template into echo's Renderer hook. Every
// page template under the templates directory is parsed once at startup.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	templates, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}

	return &TemplateRenderer{templates: templates}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

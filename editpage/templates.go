package editpage

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// anchor emits a skeleton comment. html/template drops comments written in
// template text, so anchors go through a trusted value.
func anchor(label string) template.HTML {
	return template.HTML("<!-- " + template.HTMLEscapeString(label) + " -->")
}

// AnchorComment returns the literal comment anchor for a skeleton label
func AnchorComment(label string) string {
	return string(anchor(label))
}

func loadTemplates() (*template.Template, error) {
	tmpl, err := template.New("skeleton.html").
		Funcs(template.FuncMap{"anchor": anchor}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse edit page templates: %w", err)
	}
	return tmpl, nil
}

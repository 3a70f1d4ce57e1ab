// Package editpage renders per-product edit pages and patches named sections
// of pages that already exist.
package editpage

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"apparel-editpages/models"
)

// Options are the deployment values a page refers to
type Options struct {
	StylesheetURL string // compiled Tailwind stylesheet
	APIBase       string // the save handler PUTs to APIBase/{id}
	ReturnURL     string // admin page to go back to after save or cancel
}

// DefaultOptions matches the admin deployment the pages are served from
var DefaultOptions = Options{
	StylesheetURL: "dist/output.css",
	APIBase:       "/api/admin/products",
	ReturnURL:     "admin-uploads.html",
}

// Synthesizer renders complete edit pages
type Synthesizer struct {
	tmpl     *template.Template
	opts     Options
	sections []SectionPatch
}

// NewSynthesizer parses the embedded templates
func NewSynthesizer(opts Options) (*Synthesizer, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s := &Synthesizer{tmpl: tmpl, opts: opts}
	s.sections = s.builtinSections()
	return s, nil
}

var (
	defaultSynth     *Synthesizer
	defaultSynthErr  error
	defaultSynthOnce sync.Once
)

// Default returns a shared Synthesizer built with DefaultOptions
func Default() (*Synthesizer, error) {
	defaultSynthOnce.Do(func() {
		defaultSynth, defaultSynthErr = NewSynthesizer(DefaultOptions)
	})
	return defaultSynth, defaultSynthErr
}

// Synthesize renders the edit page of one product with DefaultOptions
func Synthesize(product models.ProductRecord) (string, error) {
	s, err := Default()
	if err != nil {
		return "", err
	}
	return s.Synthesize(product)
}

// Sections returns the built-in section patches in page order
func (s *Synthesizer) Sections() []SectionPatch {
	return append([]SectionPatch(nil), s.sections...)
}

// Section returns the built-in section patch called name
func (s *Synthesizer) Section(name string) (SectionPatch, bool) {
	for _, p := range s.sections {
		if p.Name == name {
			return p, true
		}
	}
	return SectionPatch{}, false
}

// SectionNames lists the built-in section names in page order
func (s *Synthesizer) SectionNames() []string {
	names := make([]string, 0, len(s.sections))
	for _, p := range s.sections {
		names = append(names, p.Name)
	}
	return names
}

// Synthesize renders the complete edit page of one product. The skeleton is
// rendered first and every section is then placed through ApplyPatch, so a
// fresh page is already a fixed point of every built-in patch.
func (s *Synthesizer) Synthesize(product models.ProductRecord) (string, error) {
	if err := product.Validate(); err != nil {
		return "", err
	}
	view, err := s.newPageView(product.WithDefaults())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "skeleton.html", view); err != nil {
		return "", fmt.Errorf("failed to execute skeleton template: %w", err)
	}

	text := buf.String()
	for _, patch := range s.sections {
		result, err := ApplyPatch(text, patch, product)
		if err != nil {
			return "", fmt.Errorf("failed to place section %s: %w", patch.Name, err)
		}
		text = result.Text
	}
	return text, nil
}

// renderer returns a RenderFunc executing the named section template
func (s *Synthesizer) renderer(name string, data func(v *pageView) interface{}) RenderFunc {
	return func(product models.ProductRecord) (string, error) {
		if err := product.Validate(); err != nil {
			return "", err
		}
		view, err := s.newPageView(product.WithDefaults())
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		if err := s.tmpl.ExecuteTemplate(&buf, name, data(view)); err != nil {
			return "", fmt.Errorf("failed to execute %s template: %w", name, err)
		}
		return strings.TrimRight(buf.String(), "\r\n"), nil
	}
}

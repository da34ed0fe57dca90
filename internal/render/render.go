// Package render turns pages and the navigation tree into self-contained
// HTML documents using embedded templates.
package render

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"
	texttemplate "text/template"

	"git.home.luguber.info/inful/docpack/internal/devdocs"
	"git.home.luguber.info/inful/docpack/internal/errors"
)

//go:embed templates/page.html.tmpl
var pageTemplateSrc string

//go:embed templates/licenses.txt.tmpl
var licensesTemplateSrc string

// PageData is the input for rendering one content page.
type PageData struct {
	// Relative prefix ("../" per path segment) so asset and page links work
	// from nested paths.
	RelPrefix string
	// Resolved display title for the page.
	Title string
	// Content-database path of the page.
	Path string
	// Metadata of the documentation set the page belongs to.
	Metadata devdocs.Metadata
	// Ordered navigation sections for the sidebar.
	Sections []devdocs.NavigationSection
	// Raw page HTML from the content database. Already trusted markup.
	Content template.HTML
}

// LicensesData is the input for the static licenses page.
type LicensesData struct {
	Attribution string
	Copyright   string
	License     string
}

// Renderer renders pages with a precompiled template set.
type Renderer struct {
	page     *template.Template
	licenses *texttemplate.Template
}

// New compiles the embedded templates.
func New() (*Renderer, error) {
	page, err := template.New("page").Parse(pageTemplateSrc)
	if err != nil {
		return nil, errors.RenderFailed("page.html.tmpl", err)
	}
	licenses, err := texttemplate.New("licenses").Parse(licensesTemplateSrc)
	if err != nil {
		return nil, errors.RenderFailed("licenses.txt.tmpl", err)
	}
	return &Renderer{page: page, licenses: licenses}, nil
}

// RelPrefix returns the relative prefix that resolves root-anchored links
// from the given content path: one "../" per '/' in the path.
func RelPrefix(path string) string {
	return strings.Repeat("../", strings.Count(path, "/"))
}

// RenderPage renders one content page with its navigation sidebar.
func (r *Renderer) RenderPage(data PageData) (string, error) {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return "", errors.RenderFailed(data.Path, err)
	}
	return buf.String(), nil
}

// RenderLicenses renders the licenses.txt page.
func (r *Renderer) RenderLicenses(data LicensesData) (string, error) {
	var buf bytes.Buffer
	if err := r.licenses.Execute(&buf, data); err != nil {
		return "", errors.RenderFailed("licenses.txt", err)
	}
	return buf.String(), nil
}

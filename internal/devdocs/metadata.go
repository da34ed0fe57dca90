// Package devdocs models the published DevDocs.io data: documentation set
// metadata, the navigation index, and the page-content database, plus the
// HTTP client that fetches them.
package devdocs

import (
	"regexp"
	"strings"
	"time"
)

// MetadataLinks holds project links for a documentation set.
type MetadataLinks struct {
	// Home page for the project.
	Home string `json:"home"`
	// Link to the project's source code.
	Code string `json:"code"`
}

// Metadata describes one published documentation set.
type Metadata struct {
	// Human readable name for the documentation.
	Name string `json:"name"`
	// Directory name devdocs puts the docs under. Takes the format
	// name[~version] e.g. "python" or "python~3.10".
	Slug string `json:"slug"`
	// Links to project resources.
	Links *MetadataLinks `json:"links,omitempty"`
	// Shortened version displayed in devdocs, if any. Second part of the slug.
	Version string `json:"version,omitempty"`
	// Specific release of the software the documentation is for, if any.
	Release string `json:"release,omitempty"`
	// License and attribution information, if any.
	Attribution string `json:"attribution,omitempty"`
}

var cleanSlugPattern = regexp.MustCompile(`[^.a-zA-Z0-9]`)

// SlugWithoutVersion returns the slug with any ~version suffix removed.
func (m Metadata) SlugWithoutVersion() string {
	slug, _, _ := strings.Cut(m.Slug, "~")
	return slug
}

// FullName returns the display name including the version, if any.
func (m Metadata) FullName() string {
	if m.Version == "" {
		return m.Name
	}
	return m.Name + " " + m.Version
}

// Placeholders returns the substitution values available to archive format
// strings. The clock argument overrides the default clock used for "period"
// and exists for tests; pass nil for the current time.
func (m Metadata) Placeholders(clock func() time.Time) map[string]string {
	if clock == nil {
		clock = time.Now
	}

	var homeLink, codeLink string
	if m.Links != nil {
		homeLink = m.Links.Home
		codeLink = m.Links.Code
	}

	return map[string]string{
		"name":                 m.Name,
		"full_name":            m.FullName(),
		"slug":                 m.Slug,
		"clean_slug":           cleanSlugPattern.ReplaceAllString(m.Slug, "-"),
		"version":              m.Version,
		"release":              m.Release,
		"attribution":          m.Attribution,
		"home_link":            homeLink,
		"code_link":            codeLink,
		"slug_without_version": m.SlugWithoutVersion(),
		"period":               clock().Format("2006-01"),
	}
}

// LandingPageTitle returns the title injected for the implicit landing page,
// which is never itself listed as an index entry.
func (m Metadata) LandingPageTitle() string {
	return m.Name + " Documentation"
}

package generator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docpack/internal/devdocs"
	"git.home.luguber.info/inful/docpack/internal/errors"
)

// DocFilter selects which documentation sets to package.
type DocFilter struct {
	// All selects every available set.
	All bool
	// Slugs selects sets by slug. Each element may itself be a comma
	// separated list.
	Slugs []string
	// First keeps only the first N sets per slug without version.
	First int
	// SkipSlugRegex drops sets whose slug matches.
	SkipSlugRegex string
}

// Validate checks that the filter can select anything at all.
func (f DocFilter) Validate() error {
	if !f.All && len(f.Slugs) == 0 && f.First <= 0 {
		return errors.ValidationFailed("filter", "one of --all, --slug, or --first is required")
	}
	if f.SkipSlugRegex != "" {
		if _, err := f.compileSkipPattern(); err != nil {
			return errors.ValidationFailed("skip-slug-regex", err.Error())
		}
	}
	return nil
}

// compileSkipPattern anchors the skip regex at the start of the slug, so
// "python" skips python~3.10 but not jython.
func (f DocFilter) compileSkipPattern() (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + f.SkipSlugRegex + ")")
}

// normalizedSlugs expands comma separated slug values into a lookup set.
func (f DocFilter) normalizedSlugs() map[string]bool {
	slugs := make(map[string]bool)
	for _, value := range f.Slugs {
		for _, slug := range strings.Split(value, ",") {
			slug = strings.TrimSpace(slug)
			if slug != "" {
				slugs[slug] = true
			}
		}
	}
	return slugs
}

// Apply returns the selected subset of docs in their original order.
// Requesting a slug that does not exist is an error naming every missing
// slug, so typos fail loudly instead of silently producing fewer archives.
func (f DocFilter) Apply(docs []devdocs.Metadata) ([]devdocs.Metadata, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	wanted := f.normalizedSlugs()
	var skipPattern *regexp.Regexp
	if f.SkipSlugRegex != "" {
		skipPattern, _ = f.compileSkipPattern()
	}

	seen := make(map[string]int)
	found := make(map[string]bool)
	var selected []devdocs.Metadata
	for _, doc := range docs {
		// Skipped slugs do not count as found, so requesting a slug the
		// skip pattern removes still fails the run.
		if skipPattern != nil && skipPattern.MatchString(doc.Slug) {
			continue
		}
		if len(wanted) > 0 {
			if !wanted[doc.Slug] {
				continue
			}
			found[doc.Slug] = true
		}
		if f.First > 0 {
			base := doc.SlugWithoutVersion()
			if seen[base] >= f.First {
				continue
			}
			seen[base]++
		}
		selected = append(selected, doc)
	}

	if len(wanted) > 0 && len(found) < len(wanted) {
		var missing []string
		for slug := range wanted {
			if !found[slug] {
				missing = append(missing, slug)
			}
		}
		sort.Strings(missing)
		return nil, errors.ValidationFailed("slug",
			fmt.Sprintf("requested documentation not found: %s", strings.Join(missing, ", ")))
	}

	return selected, nil
}

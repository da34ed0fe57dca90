package devdocs

import "regexp"

// SortBucket is the display-order classification for a section. Buckets use
// explicit integer ranks; the rank, not declaration order, defines display
// precedence.
type SortBucket int

const (
	BucketBeforeContent SortBucket = 0
	BucketContent       SortBucket = 1
	BucketAfterContent  SortBucket = 2
)

// displayOrder is the fixed emission order for navigation buckets.
var displayOrder = []SortBucket{BucketBeforeContent, BucketContent, BucketAfterContent}

// These patterns are extracted from the DevDocs frontend, where they have
// been stable for years: tutorial/guide-like sections sort above reference
// content and appendices sort below it.
var (
	beforeContentPattern = regexp.MustCompile(`(?i)^\(?(guides?|tutorials?|reference|book|getting started|manual|examples)($|[):])`)
	afterContentPattern  = regexp.MustCompile(`(?i)^appendix`)
)

// Classify assigns a section name its display-order bucket. Total and
// deterministic: every name yields exactly one bucket.
func Classify(sectionName string) SortBucket {
	if beforeContentPattern.MatchString(sectionName) {
		return BucketBeforeContent
	}
	if afterContentPattern.MatchString(sectionName) {
		return BucketAfterContent
	}
	return BucketContent
}

// NavigationSection is one rendered sidebar group: a section header joined
// with its entries. Constructed by BuildNavigation and not mutated after.
type NavigationSection struct {
	Name    string
	Entries []IndexEntry

	// Distinct PathWithoutFragment values, precomputed so OpensForPage is
	// O(1) across the many per-page queries a render pass makes.
	pages map[string]struct{}
}

func newNavigationSection(name string, entries []IndexEntry) NavigationSection {
	pages := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		pages[entry.PathWithoutFragment()] = struct{}{}
	}
	return NavigationSection{Name: name, Entries: entries, pages: pages}
}

// Count returns the number of entries in the section.
func (s NavigationSection) Count() int {
	return len(s.Entries)
}

// OpensForPage reports whether the section should render expanded for the
// given active page. The landing page never auto-expands sections: some
// documentation sets nest all content under it, and every section would
// otherwise open at once.
func (s NavigationSection) OpensForPage(activePath string) bool {
	if activePath == LandingPage {
		return false
	}
	_, ok := s.pages[activePath]
	return ok
}

// BuildNavigation turns the flat index into the ordered navigation
// hierarchy: one section per header, buckets in display order, headers in
// source order within a bucket, entries in source order within a section.
// Headers without entries yield empty sections; entries without a type are
// excluded. The input is not mutated.
func BuildNavigation(index *Index) []NavigationSection {
	sectionsByBucket := make(map[SortBucket][]SectionHeader)
	for _, section := range index.Types {
		bucket := Classify(section.Name)
		sectionsByBucket[bucket] = append(sectionsByBucket[bucket], section)
	}

	entriesBySection := make(map[string][]IndexEntry)
	for _, entry := range index.Entries {
		if entry.Type == nil {
			continue
		}
		entriesBySection[*entry.Type] = append(entriesBySection[*entry.Type], entry)
	}

	output := make([]NavigationSection, 0, len(index.Types))
	for _, bucket := range displayOrder {
		for _, section := range sectionsByBucket[bucket] {
			output = append(output, newNavigationSection(section.Name, entriesBySection[section.Name]))
		}
	}
	return output
}

// PageTitles resolves the best display title for every content path in the
// given entries. A fragment-less entry links to the top of its document and
// always wins; otherwise the first fragment entry in source order wins.
// Callers must inject the landing page title afterwards since the landing
// page is never listed.
func PageTitles(entries []IndexEntry) map[string]string {
	titles := make(map[string]string)
	for _, entry := range entries {
		key := entry.PathWithoutFragment()
		if key == entry.Path {
			titles[key] = entry.Name
		} else if _, seen := titles[key]; !seen {
			titles[key] = entry.Name
		}
	}
	return titles
}

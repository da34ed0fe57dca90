package devdocs

import (
	"reflect"
	"testing"
)

func strptr(s string) *string { return &s }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want SortBucket
	}{
		{"Guide", BucketBeforeContent},
		{"Guides", BucketBeforeContent},
		{"Tutorial", BucketBeforeContent},
		{"Tutorials", BucketBeforeContent},
		{"tutorials", BucketBeforeContent},
		{"Reference", BucketBeforeContent},
		{"Book", BucketBeforeContent},
		{"Getting started", BucketBeforeContent},
		{"Manual", BucketBeforeContent},
		{"Examples", BucketBeforeContent},
		{"(Guide)", BucketBeforeContent},
		{"(Tutorial) Creating a ZIM", BucketBeforeContent},
		{"Guide: First Steps", BucketBeforeContent},
		{"Appendix A: List of ZIMs", BucketAfterContent},
		{"appendix", BucketAfterContent},
		{"Headers", BucketContent},
		{"ZIM Readers", BucketContent},
		{"Guidelines", BucketContent}, // "guide" must end at a boundary
		{"", BucketContent},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.name); got != test.want {
				t.Errorf("Classify(%q) = %v, want %v", test.name, got, test.want)
			}
		})
	}
}

func TestBucketRanks(t *testing.T) {
	// Display precedence is defined by explicit ranks, not declaration order.
	if BucketBeforeContent != 0 || BucketContent != 1 || BucketAfterContent != 2 {
		t.Fatalf("bucket ranks changed: %d %d %d", BucketBeforeContent, BucketContent, BucketAfterContent)
	}
}

func buildTestIndex() *Index {
	return &Index{
		Entries: []IndexEntry{
			{Name: "Appendix 1", Path: "", Type: strptr("Appendix")},
			{Name: "Middle 1", Path: "", Type: strptr("Middle")},
			{Name: "Appendix 2", Path: "", Type: strptr("Appendix")},
			{Name: "Tutorial 1", Path: "", Type: strptr("Tutorials")},
			{Name: "Middle 2", Path: "", Type: strptr("Middle")},
			{Name: "Tutorial 2", Path: "", Type: strptr("Tutorials")},
		},
		Types: []SectionHeader{
			{Name: "Appendix", Count: 2},
			{Name: "Tutorials", Count: 2},
			{Name: "Middle", Count: 2},
		},
	}
}

func sectionOrder(sections []NavigationSection) []string {
	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.Name)
	}
	return names
}

func entryNames(section NavigationSection) []string {
	names := make([]string, 0, len(section.Entries))
	for _, e := range section.Entries {
		names = append(names, e.Name)
	}
	return names
}

func TestBuildNavigation(t *testing.T) {
	got := BuildNavigation(buildTestIndex())

	wantOrder := []string{"Tutorials", "Middle", "Appendix"}
	if !reflect.DeepEqual(sectionOrder(got), wantOrder) {
		t.Fatalf("section order = %v, want %v", sectionOrder(got), wantOrder)
	}

	wantEntries := map[string][]string{
		"Tutorials": {"Tutorial 1", "Tutorial 2"},
		"Middle":    {"Middle 1", "Middle 2"},
		"Appendix":  {"Appendix 1", "Appendix 2"},
	}
	for _, section := range got {
		if !reflect.DeepEqual(entryNames(section), wantEntries[section.Name]) {
			t.Errorf("section %q entries = %v, want %v", section.Name, entryNames(section), wantEntries[section.Name])
		}
	}
}

func TestBuildNavigationKeepsEmptySections(t *testing.T) {
	index := &Index{
		Entries: nil,
		Types: []SectionHeader{
			{Name: "Empty", Count: 0},
		},
	}

	got := BuildNavigation(index)

	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got))
	}
	if got[0].Name != "Empty" || got[0].Count() != 0 {
		t.Errorf("expected empty section named Empty, got %q with %d entries", got[0].Name, got[0].Count())
	}
}

func TestBuildNavigationIgnoresUntypedEntries(t *testing.T) {
	index := &Index{
		Entries: []IndexEntry{
			{Name: "Hidden", Path: "hidden", Type: nil},
		},
		Types: []SectionHeader{
			{Name: "Appendix", Count: 1},
		},
	}

	got := BuildNavigation(index)

	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got))
	}
	if got[0].Count() != 0 {
		t.Errorf("untyped entry leaked into section: %v", entryNames(got[0]))
	}
}

func TestBuildNavigationDropsEntriesWithUnknownSection(t *testing.T) {
	index := &Index{
		Entries: []IndexEntry{
			{Name: "Orphan", Path: "orphan", Type: strptr("Nonexistent")},
			{Name: "Middle 1", Path: "middle", Type: strptr("Middle")},
		},
		Types: []SectionHeader{
			{Name: "Middle", Count: 1},
		},
	}

	got := BuildNavigation(index)

	// No section is created for the unknown name; the entry vanishes.
	if len(got) != len(index.Types) {
		t.Fatalf("output length %d, want %d", len(got), len(index.Types))
	}
	for _, section := range got {
		for _, name := range entryNames(section) {
			if name == "Orphan" {
				t.Errorf("entry with unknown section leaked into %q", section.Name)
			}
		}
	}
	if !reflect.DeepEqual(entryNames(got[0]), []string{"Middle 1"}) {
		t.Errorf("section %q entries = %v, want [Middle 1]", got[0].Name, entryNames(got[0]))
	}
}

func TestBuildNavigationLengthMatchesHeaders(t *testing.T) {
	index := buildTestIndex()
	got := BuildNavigation(index)
	if len(got) != len(index.Types) {
		t.Fatalf("output length %d, want %d", len(got), len(index.Types))
	}
}

func TestBuildNavigationIdempotent(t *testing.T) {
	index := buildTestIndex()

	first := BuildNavigation(index)
	second := BuildNavigation(index)

	if !reflect.DeepEqual(first, second) {
		t.Error("two builds over the same index differ")
	}
}

func TestOpensForPage(t *testing.T) {
	section := newNavigationSection("Test", []IndexEntry{
		{Name: "Foo 1", Path: "foo#1"},
		{Name: "Foo 2", Path: "foo#2"},
		{Name: "Bar", Path: "bar"},
	})

	if !section.OpensForPage("foo") {
		t.Error("expected section to open for foo")
	}
	if !section.OpensForPage("bar") {
		t.Error("expected section to open for bar")
	}
	if section.OpensForPage("bazz") {
		t.Error("did not expect section to open for bazz")
	}
}

func TestOpensForPageNeverOnLanding(t *testing.T) {
	section := newNavigationSection("Test", []IndexEntry{
		{Name: "Landing Link", Path: "index"},
	})

	if section.OpensForPage("index") {
		t.Error("landing page must never auto-expand sections")
	}
}

func TestNavigationSectionCount(t *testing.T) {
	empty := newNavigationSection("Empty", nil)
	if empty.Count() != 0 {
		t.Errorf("empty section count = %d", empty.Count())
	}

	one := newNavigationSection("One", []IndexEntry{{Name: "Foo 1", Path: "foo#1"}})
	if one.Count() != 1 {
		t.Errorf("section count = %d, want 1", one.Count())
	}
}

func TestPageTitlesTopWins(t *testing.T) {
	got := PageTitles([]IndexEntry{
		{Name: "Mock Sub1", Path: "mock#subheading1"},
		{Name: "Mock Top", Path: "mock"},
		{Name: "Mock Sub2", Path: "mock#subheading2"},
	})

	want := map[string]string{"mock": "Mock Top"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PageTitles() = %v, want %v", got, want)
	}
}

func TestPageTitlesFirstFragmentWins(t *testing.T) {
	got := PageTitles([]IndexEntry{
		{Name: "Mock Sub1", Path: "mock#subheading1"},
		{Name: "Mock Sub2", Path: "mock#subheading2"},
	})

	// First fragment wins if no entry points to the top of the page.
	want := map[string]string{"mock": "Mock Sub1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PageTitles() = %v, want %v", got, want)
	}
}

func TestPageTitlesEmpty(t *testing.T) {
	got := PageTitles(nil)
	if len(got) != 0 {
		t.Errorf("PageTitles(nil) = %v, want empty", got)
	}
}

package config

import (
	"strings"
	"testing"

	"git.home.luguber.info/inful/docpack/internal/errors"
)

func testArchive() ArchiveConfig {
	return ArchiveConfig{
		NameFormat:            "default_name_format",
		TitleFormat:           "default_title_format",
		Publisher:             "default_publisher",
		Creator:               "default_creator",
		DescriptionFormat:     "default_description_format",
		LongDescriptionFormat: "default_long_description_format",
		Tags:                  "default_tag1;default_tag2",
	}
}

func TestFormatNoneNeeded(t *testing.T) {
	archive := testArchive()

	formatted, err := archive.Format(map[string]string{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if formatted != archive {
		t.Errorf("Format() = %+v, want unchanged %+v", formatted, archive)
	}
}

func TestFormatOnlyFormatFields(t *testing.T) {
	archive := ArchiveConfig{
		NameFormat:            "{replace_me}",
		TitleFormat:           "{replace_me}",
		Publisher:             "{replace_me}",
		Creator:               "{replace_me}",
		DescriptionFormat:     "{replace_me}",
		LongDescriptionFormat: "{replace_me}",
		Tags:                  "{replace_me}",
	}

	formatted, err := archive.Format(map[string]string{"replace_me": "replaced"})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	want := ArchiveConfig{
		NameFormat:            "replaced",
		TitleFormat:           "replaced",
		Publisher:             "{replace_me}", // not a format string
		Creator:               "{replace_me}", // not a format string
		DescriptionFormat:     "replaced",
		LongDescriptionFormat: "replaced",
		Tags:                  "replaced",
	}
	if formatted != want {
		t.Errorf("Format() = %+v, want %+v", formatted, want)
	}
}

func TestFormatLongValuesFail(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ArchiveConfig)
	}{
		{"title", func(a *ArchiveConfig) { a.TitleFormat = strings.Repeat("a", 10000) }},
		{"description", func(a *ArchiveConfig) { a.DescriptionFormat = strings.Repeat("a", 10000) }},
		{"long description", func(a *ArchiveConfig) { a.LongDescriptionFormat = strings.Repeat("a", 10000) }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			archive := testArchive()
			test.mutate(&archive)
			if _, err := archive.Format(map[string]string{}); !errors.IsCategory(err, errors.CategoryValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFormatBoundaryLengths(t *testing.T) {
	archive := testArchive()
	archive.TitleFormat = strings.Repeat("a", MaxTitleLength)
	archive.DescriptionFormat = strings.Repeat("a", MaxDescriptionLength)
	archive.LongDescriptionFormat = strings.Repeat("a", MaxLongDescriptionLength)

	if _, err := archive.Format(map[string]string{}); err != nil {
		t.Errorf("values at the limit should pass: %v", err)
	}
}

func TestFormatInvalidPlaceholder(t *testing.T) {
	archive := testArchive()
	archive.NameFormat = "{invalid_placeholder}"

	_, err := archive.Format(map[string]string{"valid1": "", "valid2": ""})
	if !errors.IsCategory(err, errors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFormatEmptyLongDescriptionStaysEmpty(t *testing.T) {
	archive := testArchive()
	archive.LongDescriptionFormat = ""

	formatted, err := archive.Format(map[string]string{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if formatted.LongDescriptionFormat != "" {
		t.Errorf("long description = %q, want empty", formatted.LongDescriptionFormat)
	}
}

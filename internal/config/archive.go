package config

import (
	"regexp"
	"unicode/utf8"

	"git.home.luguber.info/inful/docpack/internal/errors"
)

// Length limits imposed by the downstream archive metadata format.
const (
	MaxTitleLength           = 30
	MaxDescriptionLength     = 80
	MaxLongDescriptionLength = 4000
)

// ArchiveConfig holds metadata for building archives. The *Format fields
// accept {placeholder} substitutions from Metadata.Placeholders.
type ArchiveConfig struct {
	// File name for the archive, without extension.
	NameFormat string `yaml:"name_format,omitempty"`
	// Human readable title for the archive.
	TitleFormat string `yaml:"title_format,omitempty"`
	// Publisher for the archive.
	Publisher string `yaml:"publisher,omitempty"`
	// Creator of the content in the archive.
	Creator string `yaml:"creator,omitempty"`
	// Short description for the archive.
	DescriptionFormat string `yaml:"description_format,omitempty"`
	// Long description for the archive, if any.
	LongDescriptionFormat string `yaml:"long_description_format,omitempty"`
	// Semicolon delimited list of tags.
	Tags string `yaml:"tags,omitempty"`
}

// DefaultArchive returns the default archive metadata formats.
func DefaultArchive() ArchiveConfig {
	return ArchiveConfig{
		NameFormat:        "devdocs_{slug_without_version}_{version}",
		TitleFormat:       "{full_name} Docs",
		Publisher:         "docpack",
		Creator:           "DevDocs",
		DescriptionFormat: "{full_name} docs by DevDocs",
		Tags:              "devdocs;{slug_without_version}",
	}
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// expand substitutes {placeholder} occurrences. Referencing a placeholder
// that is not provided is a validation error, surfaced before any fetch.
func expand(format string, placeholders map[string]string) (string, error) {
	var unknown string
	result := placeholderPattern.ReplaceAllStringFunc(format, func(match string) string {
		key := match[1 : len(match)-1]
		if value, ok := placeholders[key]; ok {
			return value
		}
		if unknown == "" {
			unknown = key
		}
		return match
	})
	if unknown != "" {
		return "", errors.InvalidFormat(format, unknown)
	}
	return result, nil
}

func checkLength(value, field string, limit int) (string, error) {
	if utf8.RuneCountInString(value) > limit {
		return "", errors.ValidationFailed(field, "formatted value exceeds length limit").
			WithContext("length", utf8.RuneCountInString(value)).
			WithContext("limit", limit)
	}
	return value, nil
}

// Format creates an ArchiveConfig with placeholders replaced and length
// limits enforced. Publisher and Creator are not format strings and pass
// through unchanged.
func (c ArchiveConfig) Format(placeholders map[string]string) (ArchiveConfig, error) {
	name, err := expand(c.NameFormat, placeholders)
	if err != nil {
		return ArchiveConfig{}, err
	}

	title, err := expand(c.TitleFormat, placeholders)
	if err != nil {
		return ArchiveConfig{}, err
	}
	if title, err = checkLength(title, "title", MaxTitleLength); err != nil {
		return ArchiveConfig{}, err
	}

	description, err := expand(c.DescriptionFormat, placeholders)
	if err != nil {
		return ArchiveConfig{}, err
	}
	if description, err = checkLength(description, "description", MaxDescriptionLength); err != nil {
		return ArchiveConfig{}, err
	}

	longDescription := ""
	if c.LongDescriptionFormat != "" {
		if longDescription, err = expand(c.LongDescriptionFormat, placeholders); err != nil {
			return ArchiveConfig{}, err
		}
		if longDescription, err = checkLength(longDescription, "long_description", MaxLongDescriptionLength); err != nil {
			return ArchiveConfig{}, err
		}
	}

	tags, err := expand(c.Tags, placeholders)
	if err != nil {
		return ArchiveConfig{}, err
	}

	return ArchiveConfig{
		NameFormat:            name,
		TitleFormat:           title,
		Publisher:             c.Publisher,
		Creator:               c.Creator,
		DescriptionFormat:     description,
		LongDescriptionFormat: longDescription,
		Tags:                  tags,
	}, nil
}

package devdocs

import (
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docpack/internal/errors"
)

// LandingPage is the implicit root path of every documentation set. DevDocs
// never lists it in the index but every content database contains it.
const LandingPage = "index"

// IndexEntry is one navigable link in a documentation set's sidebar index.
type IndexEntry struct {
	// Display name for the entry.
	Name string `json:"name"`
	// Path to the entry in the content database. May contain a fragment
	// identifier (#anchor) that does not exist as a database key.
	Path string `json:"path"`
	// Name of the section the entry is located under. Entries with a nil
	// type are not displayed in the navigation.
	Type *string `json:"type"`
}

// PathWithoutFragment returns the key in the content database for the
// entry's document: the path up to the first '#', or the whole path when
// no fragment is present.
func (e IndexEntry) PathWithoutFragment() string {
	base, _, _ := strings.Cut(e.Path, "#")
	return base
}

// SectionHeader is a section heading in a documentation set's index.
type SectionHeader struct {
	// Display name for the section; the join key against IndexEntry.Type.
	Name string `json:"name"`
	// Number of documents in the section. Descriptive only.
	Count int `json:"count"`
	// Section slug. Descriptive only.
	Slug string `json:"slug"`
}

// Index is the navigation source data for one documentation set, decoded
// from its index.json. Immutable once decoded.
type Index struct {
	Entries []IndexEntry    `json:"entries"`
	Types   []SectionHeader `json:"types"`
}

// Raw shapes with pointer fields so missing keys are distinguishable from
// zero values. Unknown fields are ignored to tolerate upstream schema drift.
type rawIndex struct {
	Entries *[]rawIndexEntry    `json:"entries"`
	Types   *[]rawSectionHeader `json:"types"`
}

type rawIndexEntry struct {
	Name *string `json:"name"`
	Path *string `json:"path"`
	Type *string `json:"type"`
}

type rawSectionHeader struct {
	Name  *string `json:"name"`
	Count *int    `json:"count"`
	Slug  *string `json:"slug"`
}

// DecodeIndex decodes an index.json document, enforcing the required fields:
// entries and types at the top level, name/path per entry, name/count/slug
// per section. Failures carry the decode error category.
func DecodeIndex(data []byte) (*Index, error) {
	var raw rawIndex
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.DecodeFailed("index.json", err)
	}
	if raw.Entries == nil {
		return nil, errors.MissingField("index.json", "entries")
	}
	if raw.Types == nil {
		return nil, errors.MissingField("index.json", "types")
	}

	index := &Index{
		Entries: make([]IndexEntry, 0, len(*raw.Entries)),
		Types:   make([]SectionHeader, 0, len(*raw.Types)),
	}

	for i, entry := range *raw.Entries {
		if entry.Name == nil {
			return nil, errors.MissingField("index.json", fmt.Sprintf("entries[%d].name", i))
		}
		if entry.Path == nil {
			return nil, errors.MissingField("index.json", fmt.Sprintf("entries[%d].path", i))
		}
		index.Entries = append(index.Entries, IndexEntry{
			Name: *entry.Name,
			Path: *entry.Path,
			Type: entry.Type,
		})
	}

	for i, section := range *raw.Types {
		if section.Name == nil {
			return nil, errors.MissingField("index.json", fmt.Sprintf("types[%d].name", i))
		}
		if section.Count == nil {
			return nil, errors.MissingField("index.json", fmt.Sprintf("types[%d].count", i))
		}
		if section.Slug == nil {
			return nil, errors.MissingField("index.json", fmt.Sprintf("types[%d].slug", i))
		}
		index.Types = append(index.Types, SectionHeader{
			Name:  *section.Name,
			Count: *section.Count,
			Slug:  *section.Slug,
		})
	}

	return index, nil
}

type rawMetadata struct {
	Name        *string        `json:"name"`
	Slug        *string        `json:"slug"`
	Links       *MetadataLinks `json:"links"`
	Version     string         `json:"version"`
	Release     string         `json:"release"`
	Attribution string         `json:"attribution"`
}

func (r rawMetadata) toMetadata(resource string) (Metadata, error) {
	if r.Name == nil {
		return Metadata{}, errors.MissingField(resource, "name")
	}
	if r.Slug == nil {
		return Metadata{}, errors.MissingField(resource, "slug")
	}
	return Metadata{
		Name:        *r.Name,
		Slug:        *r.Slug,
		Links:       r.Links,
		Version:     r.Version,
		Release:     r.Release,
		Attribution: r.Attribution,
	}, nil
}

// DecodeMetadata decodes a single meta.json document.
func DecodeMetadata(data []byte) (Metadata, error) {
	var raw rawMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return Metadata{}, errors.DecodeFailed("meta.json", err)
	}
	return raw.toMetadata("meta.json")
}

// DecodeMetadataList decodes the frontend docs.json listing.
func DecodeMetadataList(data []byte) ([]Metadata, error) {
	var raws []rawMetadata
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, errors.DecodeFailed("docs.json", err)
	}
	docs := make([]Metadata, 0, len(raws))
	for _, raw := range raws {
		metadata, err := raw.toMetadata("docs.json")
		if err != nil {
			return nil, err
		}
		docs = append(docs, metadata)
	}
	return docs, nil
}

// DecodeDatabase decodes a db.json content database: a flat mapping from
// content path to raw HTML.
func DecodeDatabase(data []byte) (map[string]string, error) {
	var db map[string]string
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, errors.DecodeFailed("db.json", err)
	}
	return db, nil
}

// Package archive writes single-file offline documentation archives. The
// docset container is a SQLite database holding archive metadata, rendered
// pages with plain-text search content, and static assets.
package archive

// Metadata describes one archive for offline readers.
type Metadata struct {
	// Stable name of the archive, e.g. devdocs_python_3.10.
	Name string
	// Human readable title.
	Title string
	// Creator of the packaged content.
	Creator string
	// Publisher of the archive.
	Publisher string
	// Short description.
	Description string
	// Long description, if any.
	LongDescription string
	// Semicolon delimited tags.
	Tags string
	// ISO-639-3 language code of the content.
	Language string
	// Name and version of the producing tool.
	Scraper string
	// Production date, YYYY-MM-DD.
	Date string
}

// Writer is the sink consuming rendered pages and static assets for one
// archive. Implementations are not safe for concurrent use; one archive is
// written by one goroutine.
type Writer interface {
	// SetMetadata records the archive metadata. Must be called before Finish.
	SetMetadata(meta Metadata) error
	// AddPage stores a rendered page under its content path together with
	// its display title and plain-text search content.
	AddPage(path, title, html, searchText string) error
	// AddAsset stores a static file such as a stylesheet.
	AddAsset(path, mimetype string, content []byte) error
	// Finish completes the archive. No writes may follow.
	Finish() error
}

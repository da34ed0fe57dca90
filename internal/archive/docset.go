package archive

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/docpack/internal/errors"
)

const docsetSchema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pages (
	path        TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	content     BLOB NOT NULL,
	search_text TEXT NOT NULL,
	compressed  INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS assets (
	path     TEXT PRIMARY KEY,
	mimetype TEXT NOT NULL,
	content  BLOB NOT NULL
);
`

// DocsetWriter writes a docset archive into a single SQLite file. Page HTML
// is zstd compressed; assets are stored verbatim. The writer targets a
// temporary sibling file and renames it into place on Finish, so an aborted
// run never leaves a partial archive at the final path.
type DocsetWriter struct {
	mu       sync.Mutex
	db       *sql.DB
	encoder  *zstd.Encoder
	path     string
	tmpPath  string
	finished bool
}

// NewDocsetWriter creates the archive file at path. An existing temporary
// file from a previous aborted run is overwritten.
func NewDocsetWriter(path string) (*DocsetWriter, error) {
	tmpPath := path + ".tmp"
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.ArchiveFailed(path, err)
	}

	db, err := sql.Open("sqlite", tmpPath)
	if err != nil {
		return nil, errors.ArchiveFailed(path, err)
	}
	if _, err := db.Exec(docsetSchema); err != nil {
		_ = db.Close()
		_ = os.Remove(tmpPath)
		return nil, errors.ArchiveFailed(path, fmt.Errorf("initialize schema: %w", err))
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		_ = db.Close()
		_ = os.Remove(tmpPath)
		return nil, errors.ArchiveFailed(path, err)
	}

	return &DocsetWriter{
		db:      db,
		encoder: encoder,
		path:    path,
		tmpPath: tmpPath,
	}, nil
}

// SetMetadata stores every non-empty metadata field in the meta table.
func (w *DocsetWriter) SetMetadata(meta Metadata) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.finished {
		return errors.ArchiveFailed(w.path, fmt.Errorf("archive already finished"))
	}

	fields := map[string]string{
		"name":            meta.Name,
		"title":           meta.Title,
		"creator":         meta.Creator,
		"publisher":       meta.Publisher,
		"description":     meta.Description,
		"longDescription": meta.LongDescription,
		"tags":            meta.Tags,
		"language":        meta.Language,
		"scraper":         meta.Scraper,
		"date":            meta.Date,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		_, err := w.db.Exec(
			`INSERT INTO meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		)
		if err != nil {
			return errors.ArchiveFailed(w.path, fmt.Errorf("store metadata %s: %w", key, err))
		}
	}
	return nil
}

// AddPage stores one rendered page. Re-adding a path replaces the page.
func (w *DocsetWriter) AddPage(path, title, html, searchText string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.finished {
		return errors.ArchiveFailed(w.path, fmt.Errorf("archive already finished"))
	}

	compressed := w.encoder.EncodeAll([]byte(html), nil)
	_, err := w.db.Exec(
		`INSERT INTO pages (path, title, content, search_text, compressed)
		 VALUES (?, ?, ?, ?, 1)
		 ON CONFLICT(path) DO UPDATE SET
		   title = excluded.title,
		   content = excluded.content,
		   search_text = excluded.search_text,
		   compressed = excluded.compressed`,
		path, title, compressed, searchText,
	)
	if err != nil {
		return errors.ArchiveFailed(w.path, fmt.Errorf("store page %s: %w", path, err))
	}
	return nil
}

// AddAsset stores one static file verbatim.
func (w *DocsetWriter) AddAsset(path, mimetype string, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.finished {
		return errors.ArchiveFailed(w.path, fmt.Errorf("archive already finished"))
	}

	_, err := w.db.Exec(
		`INSERT INTO assets (path, mimetype, content) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   mimetype = excluded.mimetype,
		   content = excluded.content`,
		path, mimetype, content,
	)
	if err != nil {
		return errors.ArchiveFailed(w.path, fmt.Errorf("store asset %s: %w", path, err))
	}
	return nil
}

// Finish closes the database and moves the archive to its final path.
func (w *DocsetWriter) Finish() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.finished {
		return nil
	}
	w.finished = true

	w.encoder.Close()
	if err := w.db.Close(); err != nil {
		return errors.ArchiveFailed(w.path, fmt.Errorf("close database: %w", err))
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		return errors.ArchiveFailed(w.path, err)
	}
	return nil
}

// Abort discards the archive. Safe to call after Finish, where it is a no-op.
func (w *DocsetWriter) Abort() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.finished {
		return
	}
	w.finished = true
	w.encoder.Close()
	_ = w.db.Close()
	_ = os.Remove(w.tmpPath)
}

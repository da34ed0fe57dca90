package archive

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"git.home.luguber.info/inful/docpack/internal/errors"
)

// DocsetReader reads a finished docset archive. It exists for verification
// and tooling; the generator only writes.
type DocsetReader struct {
	db      *sql.DB
	decoder *zstd.Decoder
	path    string
}

// OpenDocset opens an archive produced by DocsetWriter.
func OpenDocset(path string) (*DocsetReader, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.ArchiveFailed(path, err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = db.Close()
		return nil, errors.ArchiveFailed(path, err)
	}
	return &DocsetReader{db: db, decoder: decoder, path: path}, nil
}

// Meta returns the value of one metadata key, or "" when absent.
func (r *DocsetReader) Meta(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.ArchiveFailed(r.path, err)
	}
	return value, nil
}

// Page returns the title and decompressed HTML of one page.
func (r *DocsetReader) Page(path string) (title, html string, err error) {
	var content []byte
	var compressed bool
	err = r.db.QueryRow(
		`SELECT title, content, compressed FROM pages WHERE path = ?`, path,
	).Scan(&title, &content, &compressed)
	if err == sql.ErrNoRows {
		return "", "", errors.ArchiveFailed(r.path, fmt.Errorf("page %s not found", path))
	}
	if err != nil {
		return "", "", errors.ArchiveFailed(r.path, err)
	}
	if compressed {
		decoded, derr := r.decoder.DecodeAll(content, nil)
		if derr != nil {
			return "", "", errors.ArchiveFailed(r.path, fmt.Errorf("decompress page %s: %w", path, derr))
		}
		content = decoded
	}
	return title, string(content), nil
}

// Asset returns the mimetype and content of one static file.
func (r *DocsetReader) Asset(path string) (mimetype string, content []byte, err error) {
	err = r.db.QueryRow(
		`SELECT mimetype, content FROM assets WHERE path = ?`, path,
	).Scan(&mimetype, &content)
	if err == sql.ErrNoRows {
		return "", nil, errors.ArchiveFailed(r.path, fmt.Errorf("asset %s not found", path))
	}
	if err != nil {
		return "", nil, errors.ArchiveFailed(r.path, err)
	}
	return mimetype, content, nil
}

// PageCount returns the number of stored pages.
func (r *DocsetReader) PageCount() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, errors.ArchiveFailed(r.path, err)
	}
	return n, nil
}

// Close releases the reader.
func (r *DocsetReader) Close() error {
	r.decoder.Close()
	return r.db.Close()
}

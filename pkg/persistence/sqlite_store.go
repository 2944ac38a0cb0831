package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/ucanduit/ucanduit/pkg/appdir"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    filename   TEXT PRIMARY KEY,
    data       TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const upsertDocument = `
INSERT INTO documents (filename, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(filename) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
`

// SQLiteStore implements Store using a SQLite database with one row per
// document. Rows hold the same pretty-printed text the JSON backend writes.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (and creates, with its parent directory) the database
// at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := appdir.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, newError(ErrDirectoryCreate, "", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Write(filename string, data any) error {
	if err := ValidateFilename(filename); err != nil {
		return newError(ErrInvalidFilename, filename, err)
	}

	content, err := encodeDocument(data)
	if err != nil {
		return newError(ErrSerialization, filename, err)
	}

	if _, err := s.db.Exec(upsertDocument, filename, string(content)); err != nil {
		return newError(ErrWrite, filename, err)
	}

	logrus.WithFields(logrus.Fields{"filename": filename, "bytes": len(content)}).Debug("stored document")
	return nil
}

func (s *SQLiteStore) Read(filename string) (any, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, newError(ErrInvalidFilename, filename, err)
	}

	var content string
	err := s.db.QueryRow("SELECT data FROM documents WHERE filename = ?", filename).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newError(ErrFileNotFound, filename, nil)
	}
	if err != nil {
		return nil, newError(ErrRead, filename, err)
	}

	v, err := decodeDocument([]byte(content))
	if err != nil {
		return nil, newError(ErrParse, filename, err)
	}

	return v, nil
}

func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query("SELECT filename FROM documents ORDER BY filename")
	if err != nil {
		return nil, newError(ErrRead, "", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, newError(ErrRead, "", fmt.Errorf("failed to scan document: %w", err))
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, newError(ErrRead, "", err)
	}

	return names, nil
}

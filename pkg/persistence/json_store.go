package persistence

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/ucanduit/ucanduit/pkg/appdir"
)

// JSONStore implements Store with one pretty-printed JSON file per document
// in the application directory. The directory is resolved from env on every
// call.
type JSONStore struct {
	env appdir.Env
}

func NewJSONStore(env appdir.Env) *JSONStore {
	return &JSONStore{env: env}
}

// Dir returns the application directory as currently resolved.
func (s *JSONStore) Dir() (string, error) {
	return appdir.Resolve(s.env)
}

func (s *JSONStore) Write(filename string, data any) error {
	if err := ValidateFilename(filename); err != nil {
		return newError(ErrInvalidFilename, filename, err)
	}

	dir, err := s.Dir()
	if err != nil {
		return newError(ErrDirectoryResolve, filename, err)
	}

	if err := appdir.EnsureDir(dir); err != nil {
		return newError(ErrDirectoryCreate, filename, err)
	}

	content, err := encodeDocument(data)
	if err != nil {
		return newError(ErrSerialization, filename, err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return newError(ErrWrite, filename, err)
	}

	logrus.WithFields(logrus.Fields{"filename": filename, "bytes": len(content)}).Debug("wrote document")
	return nil
}

func (s *JSONStore) Read(filename string) (any, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, newError(ErrInvalidFilename, filename, err)
	}

	dir, err := s.Dir()
	if err != nil {
		return nil, newError(ErrDirectoryResolve, filename, err)
	}

	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, newError(ErrFileNotFound, filename, nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(ErrRead, filename, err)
	}

	v, err := decodeDocument(content)
	if err != nil {
		return nil, newError(ErrParse, filename, err)
	}

	logrus.WithField("filename", filename).Debug("read document")
	return v, nil
}

// List returns the document names in the application directory, skipping
// the config and database files. A missing directory is reported as empty and
// is not created.
func (s *JSONStore) List() ([]string, error) {
	dir, err := s.Dir()
	if err != nil {
		return nil, newError(ErrDirectoryResolve, "", err)
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, newError(ErrRead, "", err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || IsReserved(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

func (s *JSONStore) Close() error {
	return nil
}

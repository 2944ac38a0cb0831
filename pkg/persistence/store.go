package persistence

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ucanduit/ucanduit/pkg/appdir"
	"github.com/ucanduit/ucanduit/pkg/types"
)

// Store persists named JSON documents.
type Store interface {
	Write(filename string, data any) error
	Read(filename string) (any, error)
	List() ([]string, error)
	Close() error
}

// NewStoreWithBackend creates a Store for the given backend and optional path.
func NewStoreWithBackend(backend, path string, env appdir.Env) (Store, error) {
	return NewStore(types.StorageConfig{Backend: types.Backend(backend), Path: path}, env)
}

// NewStore creates a Store based on the storage configuration.
func NewStore(cfg types.StorageConfig, env appdir.Env) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = types.BackendJSON
	}

	switch backend {
	case types.BackendJSON:
		return NewJSONStore(env), nil
	case types.BackendSQLite:
		path := cfg.Path
		if path == "" {
			dir, err := appdir.Resolve(env)
			if err != nil {
				return nil, newError(ErrDirectoryResolve, "", err)
			}
			path = filepath.Join(dir, DefaultSQLiteName)
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

// Copy writes every document in src to dst and returns how many were copied.
// Entries that are not valid JSON, such as stray files left in the app
// directory, are skipped with a warning.
func Copy(dst, src Store) (int, error) {
	names, err := src.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list documents: %w", err)
	}

	copied := 0
	for _, name := range names {
		v, err := src.Read(name)
		if errors.Is(err, ErrParse) {
			logrus.WithError(err).WithField("filename", name).Warn("skipping unparseable document")
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("failed to load from source: %w", err)
		}
		if err := dst.Write(name, v); err != nil {
			return copied, fmt.Errorf("failed to write to destination: %w", err)
		}
		copied++
	}

	return copied, nil
}

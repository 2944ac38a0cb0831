package types

type Backend string

const (
	BackendJSON   = Backend("json")
	BackendSQLite = Backend("sqlite")
)

// StorageConfig selects where documents are persisted.
type StorageConfig struct {
	Backend Backend `yaml:"backend"`
	// Path overrides the sqlite database file. Unused by the json backend,
	// which always writes into the application directory.
	Path string `yaml:"path"`
}

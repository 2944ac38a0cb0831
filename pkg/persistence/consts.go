package persistence

// Default file names inside the application directory.
const (
	DefaultConfigName = "config.yaml"
	DefaultSQLiteName = "ucanduit.db"
)

// reservedNames are files the application keeps next to the documents.
// They are never reported by JSONStore.List and cannot be written or read as
// documents.
var reservedNames = map[string]bool{
	DefaultConfigName:          true,
	DefaultSQLiteName:          true,
	DefaultSQLiteName + "-wal": true,
	DefaultSQLiteName + "-shm": true,
}

// IsReserved reports whether name is an application file rather than a
// document.
func IsReserved(name string) bool {
	return reservedNames[name]
}

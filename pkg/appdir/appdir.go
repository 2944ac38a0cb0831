package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	AppDataVar = "APPDATA"
	HomeVar    = "HOME"

	appDataDirName = "ucanduit"
	homeDirName    = ".ucanduit"
	fallbackDir    = "data"
)

// Env is a snapshot of the process state that directory resolution depends on.
type Env interface {
	LookupEnv(key string) (string, bool)
	Getwd() (string, error)
}

// OSEnv reads the live process environment on every lookup.
type OSEnv struct{}

func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

func (OSEnv) Getwd() (string, error) { return os.Getwd() }

// MapEnv is a fixed environment, mostly useful in tests.
type MapEnv struct {
	Vars map[string]string
	Dir  string
}

func (e MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := e.Vars[key]
	return v, ok
}

func (e MapEnv) Getwd() (string, error) {
	if e.Dir == "" {
		return "", fmt.Errorf("working directory is not set")
	}
	return e.Dir, nil
}

// Overlay layers Vars over Base. The working directory always comes from Base.
type Overlay struct {
	Vars map[string]string
	Base Env
}

func (o Overlay) LookupEnv(key string) (string, bool) {
	if v, ok := o.Vars[key]; ok {
		return v, true
	}
	return o.Base.LookupEnv(key)
}

func (o Overlay) Getwd() (string, error) { return o.Base.Getwd() }

// Resolve returns the application directory for env:
// <APPDATA>/ucanduit, else <home>/.ucanduit, else <cwd>/data.
// Empty variables count as unset.
func Resolve(env Env) (string, error) {
	if v := lookup(env, AppDataVar); v != "" {
		return filepath.Join(v, appDataDirName), nil
	}

	for _, key := range homeVars() {
		if v := lookup(env, key); v != "" {
			return filepath.Join(v, homeDirName), nil
		}
	}

	wd, err := env.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	return filepath.Join(wd, fallbackDir), nil
}

// EnsureDir creates dir and any missing parents. It is a no-op when dir exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func lookup(env Env, key string) string {
	v, _ := env.LookupEnv(key)
	return v
}

func homeVars() []string {
	if runtime.GOOS == "windows" {
		return []string{HomeVar, "USERPROFILE"}
	}
	return []string{HomeVar}
}

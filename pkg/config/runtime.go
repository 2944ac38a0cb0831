package config

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ucanduit/ucanduit/pkg/appdir"
	"github.com/ucanduit/ucanduit/pkg/persistence"
)

// Set from persistent flags on the root command.
var (
	EnvFile  string
	LogLevel string
)

// Current is populated by Init before any subcommand runs.
var Current *Runtime

type Runtime struct {
	Env        appdir.Env
	Config     *Config
	ConfigPath string
}

// Init builds the environment snapshot, loads the config and applies the log
// level. The --log-level flag wins over the config file.
func Init() error {
	rt, err := NewRuntime(appdir.OSEnv{}, EnvFile, ConfigPath)
	if err != nil {
		return err
	}

	if LogLevel != "" {
		rt.Config.Log.Level = LogLevel
	}
	logrus.SetLevel(rt.Config.LogLevel())

	Current = rt
	return nil
}

// NewRuntime layers envFile (if any) over base and loads the config from
// configPath, or from <app_dir>/config.yaml when configPath is empty.
func NewRuntime(base appdir.Env, envFile, configPath string) (*Runtime, error) {
	env := base
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		env = appdir.Overlay{Vars: vars, Base: base}
	}

	if configPath == "" {
		dir, err := appdir.Resolve(env)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve app directory: %w", err)
		}
		configPath = filepath.Join(dir, persistence.DefaultConfigName)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}

	return &Runtime{Env: env, Config: cfg, ConfigPath: configPath}, nil
}

// OpenStore opens the configured storage backend.
func (r *Runtime) OpenStore() (persistence.Store, error) {
	return persistence.NewStore(r.Config.Storage, r.Env)
}

// Dir resolves the application directory from the runtime environment.
func (r *Runtime) Dir() (string, error) {
	return appdir.Resolve(r.Env)
}

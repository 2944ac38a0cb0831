package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ucanduit/ucanduit/pkg/types"
)

// ConfigPath is set by the --config flag. Empty means <app_dir>/config.yaml.
var ConfigPath string

type Server struct {
	Addr string `yaml:"addr"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Config struct {
	Storage types.StorageConfig `yaml:"storage"`
	Server  Server              `yaml:"server"`
	Log     Log                 `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Storage: types.StorageConfig{Backend: types.BackendJSON},
		Server:  Server{Addr: "127.0.0.1:0"},
		Log:     Log{Level: logrus.InfoLevel.String()},
	}
}

// LogLevel parses the configured level, falling back to info.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Load reads the config at configPath on top of Default. A missing file is
// not an error and is not created.
func Load(configPath string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

func Dump(configPath string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}

	return nil
}

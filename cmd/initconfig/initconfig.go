/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package initconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ucanduit/ucanduit/pkg/appdir"
	"github.com/ucanduit/ucanduit/pkg/config"
	"github.com/ucanduit/ucanduit/pkg/types"
)

var (
	backend string
	force   bool
)

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "write a default config file",
	Long:  `Write a config file with default settings to the config path (<app dir>/config.yaml unless --config is given).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Current.ConfigPath

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat config file: %w", err)
		}

		cfg := config.Default()
		switch types.Backend(backend) {
		case types.BackendJSON, types.BackendSQLite:
			cfg.Storage.Backend = types.Backend(backend)
		default:
			return fmt.Errorf("unknown storage backend: %s", backend)
		}

		if err := appdir.EnsureDir(filepath.Dir(path)); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := config.Dump(path, cfg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	InitCmd.Flags().StringVar(&backend, "backend", string(types.BackendJSON), "storage backend (json or sqlite)")
	InitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
}

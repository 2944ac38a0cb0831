package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ucanduit/ucanduit/pkg/config"
	"github.com/ucanduit/ucanduit/pkg/persistence"
	"github.com/ucanduit/ucanduit/pkg/types"
)

var (
	fromBackend string
	toBackend   string
	sourcePath  string
	destPath    string
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "copy documents between storage backends",
	Long:  `Copy every document from one storage backend to another (e.g. json to sqlite).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd)
	},
}

func init() {
	MigrateCmd.Flags().StringVar(&fromBackend, "from", "json", "source backend (json or sqlite)")
	MigrateCmd.Flags().StringVar(&toBackend, "to", "sqlite", "destination backend (json or sqlite)")
	MigrateCmd.Flags().StringVar(&sourcePath, "source", "", "source sqlite file (defaults to the app directory)")
	MigrateCmd.Flags().StringVar(&destPath, "dest", "", "destination sqlite file (defaults to the app directory)")
}

func runMigrate(cmd *cobra.Command) error {
	// The json backend ignores --source and --dest.
	if fromBackend == toBackend && (fromBackend == string(types.BackendJSON) || sourcePath == destPath) {
		return fmt.Errorf("source and destination are the same: %s", fromBackend)
	}

	env := config.Current.Env

	src, err := persistence.NewStoreWithBackend(fromBackend, sourcePath, env)
	if err != nil {
		return fmt.Errorf("failed to open source store: %w", err)
	}
	defer src.Close()

	dst, err := persistence.NewStoreWithBackend(toBackend, destPath, env)
	if err != nil {
		return fmt.Errorf("failed to open destination store: %w", err)
	}
	defer dst.Close()

	n, err := persistence.Copy(dst, src)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully migrated %d document(s) from %s to %s.\n", n, fromBackend, toBackend)
	fmt.Fprintln(cmd.OutOrStdout(), "Update your config.yaml to use the new backend:")
	fmt.Fprintln(cmd.OutOrStdout(), "  storage:")
	fmt.Fprintf(cmd.OutOrStdout(), "    backend: %s\n", toBackend)
	return nil
}

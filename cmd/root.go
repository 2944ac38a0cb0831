/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ucanduit/ucanduit/cmd/dir"
	"github.com/ucanduit/ucanduit/cmd/initconfig"
	"github.com/ucanduit/ucanduit/cmd/list"
	"github.com/ucanduit/ucanduit/cmd/migrate"
	"github.com/ucanduit/ucanduit/cmd/read"
	"github.com/ucanduit/ucanduit/cmd/serve"
	"github.com/ucanduit/ucanduit/cmd/watch"
	"github.com/ucanduit/ucanduit/cmd/write"
	"github.com/ucanduit/ucanduit/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ucanduit",
	Short: "Application data backend for the ucanduit desktop shell",
	Long: `ucanduit stores the desktop shell's JSON documents in a per-user
application directory:

  $APPDATA/ucanduit, else $HOME/.ucanduit, else ./data

Documents can be written and read from the command line, or by the UI
through the loopback bridge started with "ucanduit serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Init()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.ConfigPath, "config", "", "config file (default is <app dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&config.EnvFile, "env-file", "", "dotenv file layered over the process environment")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "", "log level (overrides log.level in the config file)")

	rootCmd.AddCommand(initconfig.InitCmd)
	rootCmd.AddCommand(dir.DirCmd)
	rootCmd.AddCommand(write.WriteCmd)
	rootCmd.AddCommand(read.ReadCmd)
	rootCmd.AddCommand(list.ListCmd)
	rootCmd.AddCommand(serve.ServeCmd)
	rootCmd.AddCommand(migrate.MigrateCmd)
	rootCmd.AddCommand(watch.WatchCmd)
}

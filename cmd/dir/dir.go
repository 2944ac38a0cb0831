/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package dir

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ucanduit/ucanduit/pkg/config"
)

// DirCmd represents the dir command
var DirCmd = &cobra.Command{
	Use:   "dir",
	Short: "print the application directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := config.Current.Dir()
		if err != nil {
			return fmt.Errorf("failed to resolve app directory: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), d)
		return nil
	},
}

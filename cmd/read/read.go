/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package read

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ucanduit/ucanduit/pkg/config"
)

// ReadCmd represents the read command
var ReadCmd = &cobra.Command{
	Use:   "read <filename>",
	Short: "print a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Current.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		v, err := store.Read(args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

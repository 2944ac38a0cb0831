/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package write

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ucanduit/ucanduit/pkg/config"
)

// WriteCmd represents the write command
var WriteCmd = &cobra.Command{
	Use:   "write <filename> [json]",
	Short: "write a JSON document",
	Long:  `Write a JSON document into the application directory. The value is read from stdin when it is not given as an argument.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		if len(args) == 2 {
			data = []byte(args[1])
		} else {
			var err error
			if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		if !json.Valid(data) {
			return fmt.Errorf("input is not valid JSON")
		}

		store, err := config.Current.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		return store.Write(args[0], json.RawMessage(data))
	},
}

/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ucanduit/ucanduit/pkg/appdir"
	"github.com/ucanduit/ucanduit/pkg/config"
	"github.com/ucanduit/ucanduit/pkg/watch"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "print document changes as JSON lines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Current.Dir()
		if err != nil {
			return fmt.Errorf("failed to resolve app directory: %w", err)
		}
		if err := appdir.EnsureDir(dir); err != nil {
			return fmt.Errorf("failed to create app directory: %w", err)
		}

		w, err := watch.New(dir)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logrus.WithField("dir", dir).Info("watching documents")
		enc := json.NewEncoder(cmd.OutOrStdout())
		return w.Run(ctx, func(e watch.Event) {
			logrus.WithFields(logrus.Fields{"filename": e.Filename, "op": e.Op}).Debug("document changed")
			_ = enc.Encode(e)
		})
	},
}

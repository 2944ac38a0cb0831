/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ucanduit/ucanduit/pkg/bridge"
	"github.com/ucanduit/ucanduit/pkg/config"
)

var addr string

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the UI bridge on a loopback address",
	Long: `Serve write_json_file and read_json_file to the UI over HTTP.
The base URL is printed on stdout once the listener is ready.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := config.Current
		if addr == "" {
			addr = rt.Config.Server.Addr
		}

		store, err := rt.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		registry := bridge.NewStoreRegistry(store)
		srv := bridge.NewServer(registry)
		baseURL, err := srv.Start(ctx, addr)
		if err != nil {
			return fmt.Errorf("failed to start bridge: %w", err)
		}

		logrus.WithFields(logrus.Fields{"url": baseURL, "commands": registry.Names()}).Info("bridge listening")
		fmt.Fprintln(cmd.OutOrStdout(), baseURL)

		<-ctx.Done()
		logrus.Info("shutting down")
		return nil
	},
}

func init() {
	ServeCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr in the config file)")
}

/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/courtside/internal/colors"
	"github.com/cristianoliveira/courtside/internal/config"
	"github.com/spf13/cobra"
)

type serveClient interface {
	Serve(ctx context.Context, addr string, flakyLikes int) error
}

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(client serveClient) *cobra.Command {
	if client == nil {
		panic("NewServeCmd: client dependency cannot be nil")
	}

	var addrFlag string
	var flakyLikesFlag int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local development backend",
		Long: `Run the local development backend.

Serves seeded posts and slots over the same REST API the feed and slots
screens use. When api_token is configured every request must carry it as a
bearer token. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := addrFlag
			if addr == "" {
				addr = config.Get("serve_addr", "127.0.0.1:8080")
			}
			if flakyLikesFlag < 0 {
				return fmt.Errorf("flaky-likes must not be negative")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			colors.Info(fmt.Sprintf("Serving development backend on http://%s", addr))
			if err := client.Serve(ctx, addr, flakyLikesFlag); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			colors.Success("Development backend stopped")
			return nil
		},
	}

	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from serve_addr)")
	serveCmd.Flags().IntVar(&flakyLikesFlag, "flaky-likes", 0, "Fail every Nth like request with 503 (0 = never)")

	return serveCmd
}

/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"

	"github.com/cristianoliveira/courtside/internal/tui/app"
	"github.com/spf13/cobra"
)

type tuiClientFactory interface {
	TUIClient(ctx context.Context) (app.Client, error)
}

// NewFeedCmd creates the feed command with explicit dependencies.
func NewFeedCmd(factory tuiClientFactory) *cobra.Command {
	if factory == nil {
		panic("NewFeedCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "feed",
		Short: "Browse the community feed",
		Long: `Browse the community feed.

KEYS:
    j/k        Move down/up (more posts load near the end)
    g/G        Jump to first/last post
    l          Like or unlike the selected post
    n          Turn notifications on or off for the selected post
    d          Delete the selected post (asks for confirmation)
    r          Refresh from the first page
    q          Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := factory.TUIClient(cmd.Context())
			if err != nil {
				return err
			}
			return client.RunProgram(client.CreateFeedModel())
		},
	}
}

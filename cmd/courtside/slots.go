/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/cristianoliveira/courtside/internal/config"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/spf13/cobra"
)

// NewSlotsCmd creates the slots command with explicit dependencies.
func NewSlotsCmd(factory tuiClientFactory) *cobra.Command {
	if factory == nil {
		panic("NewSlotsCmd: client dependency cannot be nil")
	}

	var kindFlag string

	slotsCmd := &cobra.Command{
		Use:   "slots",
		Short: "Browse activity and academy slots and apply",
		Long: `Browse activity and academy slots and apply.

KEYS:
    j/k        Move down/up
    enter      Show the selected slot
    a          Apply from the slot detail
    tab        Switch between activities and academies
    r          Reload slots
    esc        Close the current dialog
    q          Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := kindFlag
			if raw == "" {
				raw = config.Get("slot_kind", string(domain.KindActivity))
			}
			kind, err := domain.ParseSlotKind(raw)
			if err != nil {
				return err
			}

			client, err := factory.TUIClient(cmd.Context())
			if err != nil {
				return err
			}
			return client.RunProgram(client.CreateSlotsModel(kind))
		},
	}

	slotsCmd.Flags().StringVar(&kindFlag, "kind", "", "Slot kind to start on: activity, academy (default from slot_kind)")
	return slotsCmd
}

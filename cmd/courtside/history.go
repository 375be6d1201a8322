/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/format"
	"github.com/cristianoliveira/courtside/internal/search"
	"github.com/cristianoliveira/courtside/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

type historyClient interface {
	History() (historyStore, error)
}

const historyCommandLong = `List past applications recorded on this machine.

USAGE:
    courtside history [OPTIONS]

OPTIONS:
    --kind <kind>        Only show activity or academy applications
    --outcome <outcome>  Only show applied, duplicate or failed attempts
    --limit <n>          Show at most n records (0 = all)
    --search <pattern>   Only show records whose title or message contains pattern
    --regex              Treat --search as a case-insensitive regular expression
    --format=<format>    Output format: table (default), simple, json
    --prune-days <n>     Delete records older than n days instead of listing
    --dry-run            With --prune-days, only report what would be deleted
    -h, --help           Show this help`

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(client historyClient) *cobra.Command {
	if client == nil {
		panic("NewHistoryCmd: client dependency cannot be nil")
	}

	var (
		kindFlag      string
		outcomeFlag   string
		limitFlag     int
		formatFlag    string
		searchFlag    string
		regexFlag     bool
		pruneDaysFlag int
		dryRunFlag    bool
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List past applications",
		Long:  historyCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := historyListOptions(kindFlag, outcomeFlag, limitFlag)
			if err != nil {
				return err
			}
			if !format.IsValidType(formatFlag) {
				return fmt.Errorf("invalid format %q: must be one of: table, simple, json", formatFlag)
			}
			provider, err := historySearchProvider(searchFlag, regexFlag)
			if err != nil {
				return err
			}
			if searchFlag != "" {
				// Limit applies to the filtered records.
				opts.Limit = 0
			}
			if cmd.Flags().Changed("prune-days") && pruneDaysFlag <= 0 {
				return fmt.Errorf("prune-days must be a positive integer")
			}

			store, err := client.History()
			if err != nil {
				return err
			}

			if pruneDaysFlag > 0 {
				n, err := store.PruneApplications(cmd.Context(), pruneDaysFlag, dryRunFlag)
				if err != nil {
					return fmt.Errorf("prune failed: %w", err)
				}
				if dryRunFlag {
					cmd.Printf("Would delete %d application(s) older than %d days\n", n, pruneDaysFlag)
				} else {
					cmd.Printf("Deleted %d application(s) older than %d days\n", n, pruneDaysFlag)
				}
				return nil
			}

			records, err := store.ListApplications(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("list applications: %w", err)
			}
			records = search.Filter(provider, records, searchFlag)
			if limitFlag > 0 && len(records) > limitFlag {
				records = records[:limitFlag]
			}
			if len(records) == 0 && formatFlag != string(format.FormatterTypeJSON) {
				cmd.Println("No applications recorded")
				return nil
			}
			return format.NewFormatter(format.FormatterType(formatFlag)).FormatRecords(records, cmd.OutOrStdout())
		},
	}

	historyCmd.Flags().StringVar(&kindFlag, "kind", "", "Filter by slot kind: activity, academy")
	historyCmd.Flags().StringVar(&outcomeFlag, "outcome", "", "Filter by outcome: applied, duplicate, failed")
	historyCmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum number of records (0 = all)")
	historyCmd.Flags().StringVar(&searchFlag, "search", "", "Filter by title or message")
	historyCmd.Flags().BoolVar(&regexFlag, "regex", false, "Use regex search with --search")
	historyCmd.Flags().StringVar(&formatFlag, "format", string(format.FormatterTypeTable), "Output format: table, simple, json")
	historyCmd.Flags().IntVar(&pruneDaysFlag, "prune-days", 0, "Delete records older than N days")
	historyCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be pruned without deleting")

	return historyCmd
}

func historyListOptions(kind, outcome string, limit int) (sqlite.ListOptions, error) {
	var opts sqlite.ListOptions
	if kind != "" {
		k, err := domain.ParseSlotKind(kind)
		if err != nil {
			return opts, err
		}
		opts.Kind = k
	}
	if outcome != "" {
		switch o := domain.ApplicationOutcome(outcome); o {
		case domain.OutcomeApplied, domain.OutcomeDuplicate, domain.OutcomeFailed:
			opts.Outcome = o
		default:
			return opts, fmt.Errorf("invalid outcome %q: must be one of: applied, duplicate, failed", outcome)
		}
	}
	if limit < 0 {
		return opts, fmt.Errorf("limit must not be negative")
	}
	opts.Limit = limit
	return opts, nil
}

func historySearchProvider(query string, regex bool) (search.Provider, error) {
	if !regex {
		return search.NewSubstringProvider(search.WithCaseInsensitive(true)), nil
	}
	p := search.NewRegexProvider(search.WithCaseInsensitive(true))
	if query != "" {
		if _, err := p.(*search.RegexProvider).Compile(query); err != nil {
			return nil, fmt.Errorf("invalid search pattern: %w", err)
		}
	}
	return p, nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoHistory = errors.New("history is disabled (history.enabled is false)")

func newHistoryCmd(a *app) *cobra.Command {
	var clearAll bool
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				return errNoHistory
			}

			if clearAll {
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "History cleared")
				return nil
			}

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			return newPrinter(a.out, asJSON, "").history(entries)
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "forget every recent search")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n entries (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON even on a terminal")
	return cmd
}

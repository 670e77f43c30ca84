package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/tunes/internal/catalog"
	"github.com/mmcdole/tunes/internal/domain"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	var jq string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show(cmd.Context(), args[0], newPrinter(a.out, asJSON, jq))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON even on a terminal")
	cmd.Flags().StringVar(&jq, "jq", "", "filter the JSON output with a jq expression")
	return cmd
}

func (a *app) show(ctx context.Context, id string, p *printer) error {
	if a.cfg.Catalog.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Catalog.Timeout)
		defer cancel()
	}

	item, err := a.catalog.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return fmt.Errorf("no catalog item with id %s", id)
		}
		a.logger.Error("lookup failed", "id", id, "error", err)
		return errors.New(catalog.MsgFetchFailed)
	}

	return p.detail(catalog.DetailFor(*item), *item)
}

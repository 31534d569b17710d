package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

type pageFlags struct {
	cursor   string
	pageSize int
	all      bool
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cursor, "cursor", "", "Start cursor from a previous response")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, fmt.Sprintf("Results per page, at most %d", notion.MaxPageSize))
	cmd.Flags().BoolVar(&f.all, "all", false, "Follow next_cursor until every page is printed")
}

func (f *pageFlags) request() notion.PaginationRequest {
	return notion.PaginationRequest{StartCursor: notion.Cursor(f.cursor), PageSize: f.pageSize}
}

// printPages prints one list, or every list when all is set.
func printPages(ctx context.Context, w io.Writer, f *pageFlags, fetch func(context.Context, notion.PaginationRequest) (*notion.List, error)) error {
	req := f.request()
	for {
		list, err := fetch(ctx, req)
		if err != nil {
			return err
		}
		if err := printObject(w, list); err != nil {
			return err
		}

		next, ok := list.Next(f.pageSize)
		if !f.all || !ok {
			return nil
		}
		req = next
	}
}

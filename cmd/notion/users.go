package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

func meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the bot user behind the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := client.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printObject(cmd.OutOrStdout(), me)
		},
	}
}

func usersCmd() *cobra.Command {
	var pf pageFlags

	cmd := &cobra.Command{
		Use:   "users [user-id]",
		Short: "List workspace users, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				u, err := client.RetrieveUser(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), u)
			}
			return printPages(cmd.Context(), cmd.OutOrStdout(), &pf, func(ctx context.Context, p notion.PaginationRequest) (*notion.List, error) {
				return client.ListUsers(ctx, p)
			})
		},
	}
	pf.register(cmd)

	return cmd
}

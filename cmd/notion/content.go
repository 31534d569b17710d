package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mehmetymw/notion-go/pkg/notion"
)

func searchCmd() *cobra.Command {
	var (
		pf     pageFlags
		only   string
		newest bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search page and database titles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var base notion.SearchRequest
			if len(args) == 1 {
				base.Query = args[0]
			}
			switch only {
			case "":
			case "page":
				base = base.OnlyPages()
			case "database":
				base = base.OnlyDatabases()
			default:
				return fmt.Errorf("--only must be page or database, got %q", only)
			}
			if newest {
				base.Sort = &notion.SearchSort{Direction: notion.SortDescending, Timestamp: notion.SortLastEditedTime}
			}

			return printPages(cmd.Context(), cmd.OutOrStdout(), &pf, func(ctx context.Context, p notion.PaginationRequest) (*notion.List, error) {
				req := base
				req.StartCursor = p.StartCursor
				req.PageSize = p.PageSize
				return client.Search(ctx, req)
			})
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&only, "only", "", "Restrict results to page or database")
	cmd.Flags().BoolVar(&newest, "newest", false, "Sort by last edit, newest first")

	return cmd
}

func pageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Read and write pages",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <page-id>",
			Short: "Show a page",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := client.RetrievePage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), p)
			},
		},
		pageCreateCmd(),
		&cobra.Command{
			Use:   "archive <page-id>",
			Short: "Archive a page",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := client.ArchivePage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), p)
			},
		},
	)

	return cmd
}

func pageCreateCmd() *cobra.Command {
	var (
		parentPage string
		parentDB   string
		title      string
		titleProp  string
		paragraphs []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page under a page or database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var parent notion.Parent
			switch {
			case parentPage != "" && parentDB == "":
				parent = notion.PageParent(parentPage)
			case parentDB != "" && parentPage == "":
				parent = notion.DatabaseParent(parentDB)
			default:
				return fmt.Errorf("exactly one of --parent-page or --parent-database is required")
			}

			req := notion.CreatePageRequest{
				Parent:     parent,
				Properties: map[string]notion.PropertyValue{titleProp: notion.TitleProperty(title)},
			}
			for _, text := range paragraphs {
				req.Children = append(req.Children, notion.ParagraphBlock(text))
			}

			p, err := client.CreatePage(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printObject(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&parentPage, "parent-page", "", "Parent page id")
	cmd.Flags().StringVar(&parentDB, "parent-database", "", "Parent database id")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Page title")
	cmd.Flags().StringVar(&titleProp, "title-property", "title", "Name of the title property")
	cmd.Flags().StringArrayVarP(&paragraphs, "paragraph", "p", nil, "Paragraph to add to the page body; repeatable")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func databaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "database",
		Aliases: []string{"db"},
		Short:   "Read and query databases",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <database-id>",
			Short: "Show a database and its schema",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := client.RetrieveDatabase(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printObject(cmd.OutOrStdout(), db)
			},
		},
		databaseQueryCmd(),
	)

	return cmd
}

func databaseQueryCmd() *cobra.Command {
	var (
		pf         pageFlags
		filterFile string
	)

	cmd := &cobra.Command{
		Use:   "query <database-id>",
		Short: "Query the pages of a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var base notion.QueryDatabaseRequest
			if filterFile != "" {
				data, err := os.ReadFile(filterFile)
				if err != nil {
					return fmt.Errorf("failed to read filter: %w", err)
				}
				if err := json.Unmarshal(data, &base); err != nil {
					return fmt.Errorf("failed to parse filter: %w", err)
				}
			}

			return printPages(cmd.Context(), cmd.OutOrStdout(), &pf, func(ctx context.Context, p notion.PaginationRequest) (*notion.List, error) {
				req := base
				req.StartCursor = p.StartCursor
				req.PageSize = p.PageSize
				return client.QueryDatabase(ctx, args[0], req)
			})
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVarP(&filterFile, "query", "q", "", "JSON file holding a query body with filter and sorts")

	return cmd
}

func blocksCmd() *cobra.Command {
	var pf pageFlags

	cmd := &cobra.Command{
		Use:   "blocks <block-or-page-id>",
		Short: "List the children of a block or page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPages(cmd.Context(), cmd.OutOrStdout(), &pf, func(ctx context.Context, p notion.PaginationRequest) (*notion.List, error) {
				return client.RetrieveBlockChildren(ctx, args[0], p)
			})
		},
	}
	pf.register(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "append <block-or-page-id> <text>...",
		Short: "Append paragraphs to a block or page",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			children := make([]notion.Block, 0, len(args)-1)
			for _, text := range args[1:] {
				children = append(children, notion.ParagraphBlock(text))
			}
			list, err := client.AppendBlockChildren(cmd.Context(), args[0], children)
			if err != nil {
				return err
			}
			return printObject(cmd.OutOrStdout(), list)
		},
	})

	return cmd
}

func commentsCmd() *cobra.Command {
	var pf pageFlags

	cmd := &cobra.Command{
		Use:   "comments <block-or-page-id>",
		Short: "List unresolved comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPages(cmd.Context(), cmd.OutOrStdout(), &pf, func(ctx context.Context, p notion.PaginationRequest) (*notion.List, error) {
				return client.RetrieveComments(ctx, args[0], p)
			})
		},
	}
	pf.register(cmd)

	var discussion string
	add := &cobra.Command{
		Use:   "add <page-id> <text>",
		Short: "Comment on a page, or reply to a discussion with --discussion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := notion.CreateCommentRequest{RichText: notion.PlainRichText(args[1])}
			if discussion != "" {
				req.DiscussionID = discussion
			} else {
				parent := notion.PageParent(args[0])
				req.Parent = &parent
			}
			c, err := client.CreateComment(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printObject(cmd.OutOrStdout(), c)
		},
	}
	add.Flags().StringVar(&discussion, "discussion", "", "Discussion id to reply to")
	cmd.AddCommand(add)

	return cmd
}

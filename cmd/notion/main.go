package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mehmetymw/notion-go/pkg/config"
	"github.com/mehmetymw/notion-go/pkg/logger"
	"github.com/mehmetymw/notion-go/pkg/notion"
	"github.com/mehmetymw/notion-go/pkg/tracing"
)

var (
	cfg    *config.Config
	client *notion.Client
	log    *zap.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		token    string
		baseURL  string
		logLevel string
		caFile   string
	)

	root := &cobra.Command{
		Use:           "notion",
		Short:         "Command line client for the Notion API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			if token == "" {
				token = cfg.NotionToken
			}
			if baseURL == "" {
				baseURL = cfg.NotionBaseURL
			}
			if logLevel == "" {
				logLevel = cfg.LogLevel
			}

			var err error
			log, err = logger.New(logLevel, cfg.LogEncoding)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if cfg.OTLPEndpoint != "" {
				tp, err := tracing.InitTracer(cmd.Context(), "notion-cli", cfg.OTLPEndpoint)
				if err != nil {
					log.Warn("failed to initialize tracer, continuing without tracing", zap.Error(err))
				} else {
					cobra.OnFinalize(func() { _ = tp.Shutdown(context.Background()) })
				}
			}

			opts := []notion.Option{
				notion.WithBaseURL(baseURL),
				notion.WithLogger(log),
			}
			if caFile != "" {
				pem, err := os.ReadFile(caFile)
				if err != nil {
					return fmt.Errorf("failed to read root CA file: %w", err)
				}
				opts = append(opts, notion.WithRootCAs(pem))
			}

			client, err = notion.NewClient(token, opts...)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&token, "token", "", "Integration token (default $NOTION_TOKEN)")
	flags.StringVar(&baseURL, "base-url", "", "API base URL (default $NOTION_BASE_URL)")
	flags.StringVar(&logLevel, "log-level", "", "Log level; info prints every request and response")
	flags.StringVar(&caFile, "root-ca", "", "PEM file with extra root certificates")

	root.AddCommand(
		meCmd(),
		usersCmd(),
		searchCmd(),
		pageCmd(),
		databaseCmd(),
		blocksCmd(),
		commentsCmd(),
	)

	return root
}

func printObject(w io.Writer, obj notion.Object) error {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printError renders Notion error objects with their code so scripts can
// grep for it.
func printError(w io.Writer, err error) {
	if apiErr, ok := notion.APIError(err); ok {
		fmt.Fprintf(w, "notion: %s (%d): %s\n", apiErr.Code, apiErr.Status, apiErr.Message)
		return
	}
	var nerr *notion.Error
	if errors.As(err, &nerr) {
		fmt.Fprintf(w, "notion: %v\n", nerr)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"booksaetong/internal/app"
	"booksaetong/internal/config"
	"booksaetong/internal/domain/entity"
	"booksaetong/internal/feed"
	"booksaetong/internal/infra/fetcher"
)

type browseOptions struct {
	apiURL   string
	keyword  string
	location string
}

func newBrowseCmd(c *cli) *cobra.Command {
	opts := &browseOptions{}
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through listings interactively",
		Long: `Open an interactive feed. Listings come from the API at --api (or FEED_API_URL);
without one the local catalogue configured under database is read directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runBrowse(ctx, c, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.apiURL, "api", "", "feed API base URL (overrides api.url)")
	cmd.Flags().StringVarP(&opts.keyword, "keyword", "k", "", "initial keyword")
	cmd.Flags().StringVarP(&opts.location, "location", "l", "", "initial location scope")
	return cmd
}

func runBrowse(ctx context.Context, c *cli, opts *browseOptions, in io.Reader, out io.Writer) error {
	if opts.apiURL != "" {
		c.cfg.API.URL = opts.apiURL
	}

	source, closeSource, err := openSource(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer closeSource()

	ctrl := feed.NewController(source,
		feed.WithPageSize(c.cfg.Feed.PageSize),
		feed.WithLogger(c.logger))
	defer ctrl.Close()

	s := newSession(ctrl, out,
		feed.WithThreshold(c.cfg.Feed.SentinelThreshold),
		feed.WithMinInterval(c.cfg.Feed.SentinelMinInterval))
	fmt.Fprint(out, helpText)
	return s.run(ctx, in, feed.FilterState{Keyword: opts.keyword, LocationScope: opts.location})
}

// openSource picks the remote API client when a URL is configured and the local
// catalogue otherwise.
func openSource(ctx context.Context, cfg *config.FeedConfig, logger *slog.Logger) (feed.Fetcher[entity.Product], func(), error) {
	if cfg.API.URL != "" {
		fc := fetcher.LoadConfigFromEnv()
		fc.BaseURL = cfg.API.URL
		fc.Timeout = cfg.API.Timeout
		client, err := fetcher.NewClient(fc)
		if err != nil {
			return nil, nil, fmt.Errorf("feed api client: %w", err)
		}
		logger.Debug("browsing remote feed", slog.String("url", cfg.API.URL))
		return client, func() {}, nil
	}

	cat, err := app.OpenCatalogue(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return cat.Service, func() { _ = cat.Close() }, nil
}

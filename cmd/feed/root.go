package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"booksaetong/internal/config"
	"booksaetong/internal/observability/logging"
)

// cli carries what the persistent pre-run loads for every subcommand.
type cli struct {
	configPath string
	cfg        *config.FeedConfig
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "feed",
		Short:        "Browse the booksaetong product feed",
		Long:         "feed pages through nearby second-hand book listings, either from a running API server or straight from a local catalogue.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("CONFIG_FILE"), "path to config file")

	root.AddCommand(newBrowseCmd(c))
	root.AddCommand(newSeedCmd(c))
	return root
}

func (c *cli) load(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg, fallbacks, err := config.LoadFeedConfig(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	// 対話モードなので stderr にテキストで出す
	c.logger = logging.New(cmd.ErrOrStderr(), "text", logging.ParseLevel(cfg.Log.Level))
	for _, fb := range fallbacks {
		c.logger.Warn("configuration fallback applied",
			slog.String("field", fb.Field),
			slog.String("detail", fb.Warning))
	}
	return nil
}

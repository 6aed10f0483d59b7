package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scipunch/sciencenews/config"
	"github.com/scipunch/sciencenews/fetcher"
	"github.com/scipunch/sciencenews/news"
)

func main() {
	if os.Getenv("DEBUG") != "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "sciencenews",
		Short: "Serve BBC Science & Environment news as Markdown or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfgPath)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "path to a TOML config")

	cmd.AddCommand(newServeCommand(&cfgPath), newFetchCommand(&cfgPath))
	return cmd
}

// loadConfig reads the config, creating it with defaults when the default file is missing
func loadConfig(cfgPath string) (config.Config, error) {
	conf, err := config.Read(cfgPath)
	if errors.Is(err, os.ErrNotExist) && cfgPath == config.DefaultPath() {
		if err := config.Write(cfgPath, conf); err != nil {
			return conf, fmt.Errorf("failed to write default config with %w", err)
		}
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("failed to read config with %w", err)
	}
	return conf, nil
}

func newService(conf config.Config, opts ...news.Option) *news.Service {
	f := fetcher.NewRSSFetcher(fetcher.WithUserAgent(conf.UserAgent))
	opts = append(opts, news.WithTimeout(conf.Timeout()))
	return news.NewService(f, conf.FeedURL, opts...)
}

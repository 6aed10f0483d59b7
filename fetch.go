package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scipunch/sciencenews/news"
)

var errFetchFailed = errors.New("fetch failed")

func newFetchCommand(cfgPath *string) *cobra.Command {
	var (
		numItems int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the feed once and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("num") {
				numItems = conf.Items.Default
			}
			return runFetch(cmd.Context(), cmd.OutOrStdout(), newService(conf), conf.Items.Clamp(numItems), asJSON)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&numItems, "num", "n", 10, "number of news items")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of Markdown")
	return cmd
}

// runFetch prints one fetch to out. Markdown output is preceded by the feed
// metadata; JSON output is left bare so it stays machine readable.
func runFetch(ctx context.Context, out io.Writer, svc *news.Service, numItems int, asJSON bool) error {
	res := svc.FetchNews(ctx, numItems)
	if asJSON {
		fmt.Fprintln(out, news.FormatJSON(res))
	} else {
		writeFeedInfo(out, svc.FeedURL(), res)
		fmt.Fprintln(out, news.FormatMarkdown(res))
	}

	if res.Failed() {
		return fmt.Errorf("%w: %s", errFetchFailed, res.Err.Error)
	}
	return nil
}

func writeFeedInfo(out io.Writer, feedURL string, res news.Result) {
	fmt.Fprintf(out, "Feed URL: %s\n", feedURL)
	if res.Kind == news.KindFetch || res.Kind == news.KindParse || res.Kind == news.KindInternal {
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintf(out, "Feed Title: %s\n", orNA(res.Feed.Title))
	fmt.Fprintf(out, "Feed Description: %s\n", orNA(res.Feed.Description))
	fmt.Fprintf(out, "Total Entries: %d\n\n", res.Feed.TotalEntries)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

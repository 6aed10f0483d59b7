package news

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/scipunch/sciencenews/fetcher"
	"github.com/scipunch/sciencenews/fetcher/types"
	"github.com/scipunch/sciencenews/metrics"
)

const (
	// DefaultMaxItems is used when a caller passes a non-positive item count
	DefaultMaxItems = 10
)

// Service fetches a single feed and turns it into news items
type Service struct {
	fetcher types.FeedFetcher
	feedURL string
	timeout time.Duration
	metrics *metrics.Metrics
	log     *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithMetrics records every fetch on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger replaces the default slog logger
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTimeout bounds each fetch. Zero leaves the fetch unbounded.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// NewService creates a service reading from feedURL through f
func NewService(f types.FeedFetcher, feedURL string, opts ...Option) *Service {
	s := &Service{
		fetcher: f,
		feedURL: feedURL,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FeedURL returns the feed the service reads from
func (s *Service) FeedURL() string {
	return s.feedURL
}

// FetchNews retrieves the feed and returns at most maxItems items in feed order.
// Failures never escape: they come back as a Result holding one ErrorRecord.
func (s *Service) FetchNews(ctx context.Context, maxItems int) (res Result) {
	if maxItems < 1 {
		maxItems = DefaultMaxItems
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("feed fetch panicked", "url", s.feedURL, "panic", r)
			res = failure(KindInternal, "Failed to fetch news: %v", r)
		}
		s.metrics.ObserveFetch(outcome(res), len(res.Items), time.Since(start))
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	feed, err := s.fetcher.Fetch(ctx, s.feedURL)
	if err != nil {
		s.log.Warn("feed fetch failed", "url", s.feedURL, "error", err)
		if errors.Is(err, fetcher.ErrParse) {
			return failure(KindParse, "Failed to parse feed: %v", err)
		}
		return failure(KindFetch, "Failed to fetch news: %v", err)
	}

	info := FeedInfo{
		Title:        feed.Title,
		Description:  feed.Description,
		TotalEntries: len(feed.Items),
	}

	if len(feed.Items) == 0 {
		s.log.Warn("feed has no items", "url", s.feedURL)
		res = failure(KindEmpty, "No news items found in the feed")
		res.Feed = info
		return res
	}

	entries := feed.Items
	if len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	items := make([]NewsItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, NewsItem{
			Title:       entry.Title,
			Link:        entry.Link,
			Description: entry.Description,
			Published:   entry.Published,
		})
	}

	s.log.Debug("feed fetched", "url", s.feedURL, "total", len(feed.Items), "returned", len(items))
	return Result{Items: items, Feed: info}
}

// Formatted fetches up to numItems items and renders them as Markdown
func (s *Service) Formatted(ctx context.Context, numItems int) string {
	return FormatMarkdown(s.FetchNews(ctx, numItems))
}

// JSON fetches up to numItems items and renders them as indented JSON
func (s *Service) JSON(ctx context.Context, numItems int) string {
	return FormatJSON(s.FetchNews(ctx, numItems))
}

func outcome(res Result) string {
	switch res.Kind {
	case KindEmpty:
		return metrics.OutcomeEmpty
	case KindParse:
		return metrics.OutcomeParseError
	case KindFetch:
		return metrics.OutcomeFetchError
	case KindInternal:
		return metrics.OutcomeInternalError
	default:
		return metrics.OutcomeOK
	}
}

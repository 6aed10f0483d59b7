package fetcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/scipunch/sciencenews/fetcher/types"
)

var (
	// ErrTransport marks failures to retrieve the feed document
	ErrTransport = errors.New("transport error")
	// ErrParse marks documents that could not be parsed as RSS/Atom
	ErrParse = errors.New("parse error")
)

// RSSFetcher fetches RSS and Atom feeds using gofeed
type RSSFetcher struct {
	parser *gofeed.Parser
}

// Option configures an RSSFetcher
type Option func(*RSSFetcher)

// WithHTTPClient makes the fetcher use the given client for requests
func WithHTTPClient(client *http.Client) Option {
	return func(f *RSSFetcher) {
		f.parser.Client = client
	}
}

// WithUserAgent overrides the User-Agent header sent with requests
func WithUserAgent(ua string) Option {
	return func(f *RSSFetcher) {
		if ua != "" {
			f.parser.UserAgent = ua
		}
	}
}

// NewRSSFetcher creates a new RSS fetcher
func NewRSSFetcher(opts ...Option) *RSSFetcher {
	parser := gofeed.NewParser()
	parser.RSSTranslator = &rssTranslator{}
	parser.AtomTranslator = &atomTranslator{}

	f := &RSSFetcher{parser: parser}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves and parses an RSS feed from the given URL
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) (types.Feed, error) {
	var feed types.Feed

	gofeedFeed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return feed, classify(err)
	}

	feed.Title = gofeedFeed.Title
	feed.Description = gofeedFeed.Description
	feed.Items = make([]types.FeedItem, 0, len(gofeedFeed.Items))

	for _, item := range gofeedFeed.Items {
		if item == nil {
			continue
		}
		feed.Items = append(feed.Items, types.FeedItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Published:   item.Published,
		})
	}

	return feed, nil
}

// Error carries the failure class of a fetch alongside the underlying error.
// errors.Is matches both ErrTransport/ErrParse and the wrapped cause.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// classify tags err with ErrTransport or ErrParse depending on where gofeed failed
func classify(err error) error {
	var (
		httpErr gofeed.HTTPError
		urlErr  *url.Error
		netErr  net.Error
	)
	switch {
	case errors.As(err, &httpErr),
		errors.As(err, &urlErr),
		errors.As(err, &netErr),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: ErrTransport, Err: err}
	default:
		return &Error{Kind: ErrParse, Err: err}
	}
}

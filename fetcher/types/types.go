package types

import "context"

// Feed represents a parsed RSS/Atom document
type Feed struct {
	Title       string
	Description string
	Items       []FeedItem
}

// FeedItem represents a single entry in a feed.
// Every field defaults to an empty string when the feed omits it.
type FeedItem struct {
	Title       string
	Link        string
	Description string
	Published   string // raw date string as supplied by the feed
}

// FeedFetcher retrieves and parses a feed document
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (Feed, error)
}

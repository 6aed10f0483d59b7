package news

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NewsItem is one feed entry as exposed to callers
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Published   string `json:"published"`
}

// ErrorRecord replaces the item list when a fetch fails
type ErrorRecord struct {
	Error string `json:"error"`
}

// ErrorKind tells apart the failures that share the ErrorRecord shape
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindFetch
	KindParse
	KindEmpty
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFetch:
		return "fetch"
	case KindParse:
		return "parse"
	case KindEmpty:
		return "empty"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// FeedInfo describes the feed a result was read from.
// It is filled only when the document was fetched and parsed.
type FeedInfo struct {
	Title        string
	Description  string
	TotalEntries int
}

// Result is either a list of items or a single ErrorRecord.
// On the wire both are a JSON array: [{...item...}, ...] or [{"error": "..."}];
// Feed and Kind are not serialized.
type Result struct {
	Items []NewsItem
	Err   *ErrorRecord
	Kind  ErrorKind
	Feed  FeedInfo
}

func failure(kind ErrorKind, format string, args ...any) Result {
	return Result{
		Err:  &ErrorRecord{Error: fmt.Sprintf(format, args...)},
		Kind: kind,
	}
}

// Failed reports whether the result holds an ErrorRecord instead of items
func (r Result) Failed() bool {
	return r.Err != nil
}

// Records returns the positional list shape: items, or the lone ErrorRecord
func (r Result) Records() []any {
	if r.Err != nil {
		return []any{*r.Err}
	}
	records := make([]any, 0, len(r.Items))
	for _, item := range r.Items {
		records = append(records, item)
	}
	return records
}

func (r Result) MarshalJSON() ([]byte, error) {
	return encode(r.Records(), "")
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var records []struct {
		NewsItem
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to decode news result with %w", err)
	}

	*r = Result{Items: []NewsItem{}}
	if len(records) == 1 && records[0].Error != nil {
		r.Items = nil
		// Kind is not part of the wire format and stays KindNone
		r.Err = &ErrorRecord{Error: *records[0].Error}
		return nil
	}
	for _, rec := range records {
		r.Items = append(r.Items, rec.NewsItem)
	}
	return nil
}

// encode marshals v without escaping HTML characters, which show up in
// feed descriptions and links
func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

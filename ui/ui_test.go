package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scipunch/sciencenews/config"
	"github.com/scipunch/sciencenews/fetcher/types"
	"github.com/scipunch/sciencenews/metrics"
	"github.com/scipunch/sciencenews/news"
)

type countingFetcher struct {
	total int
	err   error
}

func (f *countingFetcher) Fetch(ctx context.Context, url string) (types.Feed, error) {
	if f.err != nil {
		return types.Feed{}, f.err
	}
	feed := types.Feed{Title: "Test"}
	for i := 0; i < f.total; i++ {
		feed.Items = append(feed.Items, types.FeedItem{
			Title:       "Story <b>" + string(rune('A'+i)) + "</b>",
			Link:        "https://example.com/" + string(rune('a'+i)),
			Description: "About " + string(rune('A'+i)),
			Published:   "Mon, 06 Oct 2025 10:00:00 GMT",
		})
	}
	return feed, nil
}

func newTestEngine(t *testing.T, f types.FeedFetcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	svc := news.NewService(f, "https://feed.test/rss.xml", news.WithMetrics(metrics.New(reg)))
	return New(Options{Title: "Science News", Items: config.Default().Items}, svc, reg)
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode(t *testing.T, body string) []map[string]string {
	t.Helper()
	var out []map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func TestIndex(t *testing.T) {
	r := newTestEngine(t, &countingFetcher{total: 3})

	w := get(t, r, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Science News")
	assert.Contains(t, body, "https://feed.test/rss.xml")
	assert.Contains(t, body, "Formatted News")
	assert.Contains(t, body, "JSON Output")
	assert.Contains(t, body, "About")
	assert.Contains(t, body, `min="1" max="20" step="1" value="10"`)
}

func TestJSON_ClampsNumItems(t *testing.T) {
	r := newTestEngine(t, &countingFetcher{total: 25})

	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"?num_items=3", 3},
		{"?num_items=0", 1},
		{"?num_items=-4", 1},
		{"?num_items=21", 20},
		{"?num_items=1000", 20},
		{"?num_items=abc", 10},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := get(t, r, "/api/news/json"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Len(t, decode(t, w.Body.String()), tt.want)
		})
	}
}

func TestJSON_ErrorRecord(t *testing.T) {
	r := newTestEngine(t, &countingFetcher{})

	w := get(t, r, "/api/news/json?num_items=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []map[string]string{{"error": "No news items found in the feed"}}, decode(t, w.Body.String()))
}

func TestFormatted_Markdown(t *testing.T) {
	r := newTestEngine(t, &countingFetcher{total: 5})

	w := get(t, r, "/api/news/formatted?num_items=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/markdown"))

	body := w.Body.String()
	assert.Contains(t, body, "**1. Story <b>A</b>**")
	assert.Contains(t, body, "**2. Story <b>B</b>**")
	assert.NotContains(t, body, "**3.")
}

func TestFormatted_HTML(t *testing.T) {
	r := newTestEngine(t, &countingFetcher{total: 1})

	w := get(t, r, "/api/news/formatted?render=html&num_items=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))

	body := w.Body.String()
	assert.Contains(t, body, "<strong>1. Story")
	assert.Contains(t, body, `<a href="https://example.com/a">Read more</a>`)
	assert.Contains(t, body, "<hr")
	assert.NotContains(t, body, "<b>A</b>", "raw HTML from the feed must not pass through")
}

func TestFormatted_Error(t *testing.T) {
	r := newTestEngine(t, &countingFetcher{})

	w := get(t, r, "/api/news/formatted")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No news items found in the feed", w.Body.String())
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t, &countingFetcher{})

	w := get(t, r, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMetrics(t *testing.T) {
	r := newTestEngine(t, &countingFetcher{total: 2})

	get(t, r, "/api/news/json?num_items=2")
	w := get(t, r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `sciencenews_fetch_total{outcome="ok"} 1`)
	assert.Contains(t, w.Body.String(), "sciencenews_items_returned_total 2")
}

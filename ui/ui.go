package ui

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"

	"github.com/scipunch/sciencenews/config"
	"github.com/scipunch/sciencenews/news"
)

//go:embed templates/*.html
var templates embed.FS

// Options describe what the page shows and which item counts it accepts
type Options struct {
	Title string
	Items config.Items
}

type handler struct {
	opts     Options
	svc      *news.Service
	markdown goldmark.Markdown
}

// New builds the web UI and API on top of svc.
// Metrics are served from gatherer when it is not nil.
func New(opts Options, svc *news.Service, gatherer prometheus.Gatherer) *gin.Engine {
	h := &handler{
		opts:     opts,
		svc:      svc,
		markdown: goldmark.New(),
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(slog.Default()))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))

	r.GET("/", h.index)
	r.GET("/api/health", health)

	api := r.Group("/api/news")
	{
		api.GET("/formatted", h.formatted)
		api.GET("/json", h.json)
	}

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":   h.opts.Title,
		"FeedURL": h.svc.FeedURL(),
		"Items":   h.opts.Items,
	})
}

func (h *handler) formatted(c *gin.Context) {
	text := h.svc.Formatted(c.Request.Context(), h.numItems(c))

	if c.Query("render") != "html" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(text))
		return
	}

	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(text), &buf); err != nil {
		slog.Error("failed to render markdown", "error", err)
		c.String(http.StatusInternalServerError, "failed to render news")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *handler) json(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(h.svc.JSON(c.Request.Context(), h.numItems(c))))
}

// numItems reads num_items and clamps it to the configured bounds.
// Missing or malformed values fall back to the default.
func (h *handler) numItems(c *gin.Context) int {
	raw := c.Query("num_items")
	if raw == "" {
		return h.opts.Items.Default
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return h.opts.Items.Default
	}
	return h.opts.Items.Clamp(n)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request completed",
			slog.String("component", "http"),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.String("remote_addr", c.ClientIP()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

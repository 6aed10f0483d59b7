package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/scipunch/sciencenews/config"
	"github.com/scipunch/sciencenews/metrics"
	"github.com/scipunch/sciencenews/news"
	"github.com/scipunch/sciencenews/ui"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfgPath)
		},
	}
}

func runServe(ctx context.Context, cfgPath string) error {
	conf, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	creds, err := config.LoadCredentials(config.CredentialsPath(cfgPath), config.EnvPath(cfgPath), ".env")
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if creds.HuggingFace.IsValid() {
		slog.Debug("hugging face token configured")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := newService(conf, news.WithMetrics(metrics.New(reg)))

	gin.SetMode(gin.ReleaseMode)
	engine := ui.New(ui.Options{Title: conf.Title, Items: conf.Items}, svc, reg)

	srv := &http.Server{
		Addr:              conf.ListenAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", conf.ListenAddr, "feed", conf.FeedURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed with %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server with %w", err)
	}
	return nil
}

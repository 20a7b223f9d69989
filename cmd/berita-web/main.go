package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pevans/berita/config"
	"github.com/pevans/berita/discovery"
	"github.com/pevans/berita/enrich"
	"github.com/pevans/berita/scraper"
	"github.com/pevans/berita/session"
	"github.com/pevans/berita/tasks"
	"github.com/pevans/berita/web"
	"golang.org/x/sync/errgroup"
)

// janitorInterval is how often expired tasks are swept.
const janitorInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.Web.Addr, "Address to listen on (BERITA_ADDR)")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error (BERITA_LOG_LEVEL)")
	flag.Parse()

	logger, err := config.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if cfg.LLM.APIKey == "" {
		logger.Warn("no LLM API key configured; summaries will be marked as failed",
			"env", config.EnvLLMAPIKey)
	}

	store := tasks.NewStore()
	aggregator := discovery.NewAggregator(
		scraper.Default(cfg.ScraperConfig(logger)),
		func() *session.Session { return session.New(cfg.SessionOptions(logger)) },
		logger,
	)
	runner := tasks.NewRunner(store, aggregator, enrich.NewLLMPipeline(cfg.LLMClientConfig(), logger), logger)

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              *addr,
		Handler:           web.NewServer(store, runner, logger).SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting berita web server", "addr", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		store.RunJanitor(gCtx, janitorInterval, cfg.Web.TaskTTL, logger)
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	// Running tasks are detached from requests; they are abandoned on exit.
	logger.Info("server exited properly", "tasks", store.Len())
}

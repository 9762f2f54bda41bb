package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"abit-rating/internal/api"
	"abit-rating/internal/catalog"
	"abit-rating/internal/config"
	"abit-rating/internal/crawler"
	"abit-rating/internal/service"
	"abit-rating/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Errorf("invalid configuration: %v", err)
		os.Exit(1)
	}
	l := logger.NewWithOptions(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		l.Errorf("load catalog: %v", err)
		os.Exit(1)
	}

	client := crawler.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.DialTimeout, cfg.HTTP.SizeCap, cfg.HTTP.UserAgent)
	svc := service.New(cat, client, l, service.ParserOptions(cfg.Parser)...)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewServer(svc, l, cfg.HTTP.Timeout+5*time.Second),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Infof("server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}

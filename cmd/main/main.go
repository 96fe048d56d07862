package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoice-matcher/internal/catalog"
	"invoice-matcher/internal/config"
	recSvc "invoice-matcher/internal/reconcile/service"
	serverhttp "invoice-matcher/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("catalog")
	}
	defer cat.Close()

	matcher := recSvc.NewMatcher(cat, logger)
	r := serverhttp.NewRouter(cfg, logger, matcher)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("bye")
}

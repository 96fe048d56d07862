package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"invoice-matcher/internal/config"
	"invoice-matcher/internal/middleware"
	recHnd "invoice-matcher/internal/reconcile/handler"
	recSvc "invoice-matcher/internal/reconcile/service"
	"invoice-matcher/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, matcher *recSvc.Matcher) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)

	// сопоставление накладной с каталогом
	r.Post("/match", recHnd.Match(cfg, matcher))
	r.Post("/match/review", recHnd.Review(cfg, matcher))

	return r
}

package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/winecellar/intake/internal/handler"
)

// New mounts the operational endpoints and sends every other path to the
// intake handler, which owns method dispatch.
func New(logger *slog.Logger, h *handler.Handler, intakeH *handler.IntakeHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(handler.SecurityHeaders)

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	intake := intakeH.Handler()
	r.Handle("/", intake)
	r.Handle("/*", intake)

	return r
}

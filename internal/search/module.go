// Package search implements the multi-content search engine: advanced and
// semantic search over questions, flashcards, military jobs and study
// groups, plus suggestions, history, feedback, presets and search analytics.
package search

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"asvab_prep_backend/internal/events"
	apphttp "asvab_prep_backend/internal/http"
	"asvab_prep_backend/internal/search/handler"
	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/service"
	"asvab_prep_backend/platform/cache"
	"asvab_prep_backend/platform/logger"
	"asvab_prep_backend/platform/validator"
)

// Module wires the search bounded context together.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the search module and subscribes its history recorder
// to the event bus.
func NewModule(pool *pgxpool.Pool, c cache.Cache, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, c, bus, log)
	svc.RegisterHandlers(bus)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "search" }

// Service exposes the search service for background refresh tasks.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts the search endpoints. Suggestions and popular
// queries are public; searches and their per-user surfaces need a signed-in
// caller; trend and quality reporting is admin only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/search/suggestions", m.handler.Suggestions)
	ctx.V1.GET("/search/popular", m.handler.Popular)

	ctx.Protected.POST("/search/advanced", m.handler.Advanced)
	ctx.Protected.GET("/search/semantic", m.handler.Semantic)
	ctx.Protected.GET("/search/history", m.handler.History)
	ctx.Protected.GET("/search/analytics", m.handler.Analytics)
	ctx.Protected.POST("/search/feedback", m.handler.Feedback)
	ctx.Protected.GET("/search/similar/:itemId", m.handler.Similar)
	ctx.Protected.POST("/search/presets", m.handler.CreatePreset)
	ctx.Protected.GET("/search/presets", m.handler.ListPresets)

	ctx.Admin.GET("/search/trends", m.handler.Trends)
	ctx.Admin.GET("/search/quality", m.handler.Quality)
}

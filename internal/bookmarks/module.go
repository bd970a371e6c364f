// Package bookmarks lets users save questions, flashcards, military jobs,
// and study groups for later.
package bookmarks

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"asvab_prep_backend/internal/bookmarks/handler"
	"asvab_prep_backend/internal/bookmarks/repository"
	"asvab_prep_backend/internal/bookmarks/service"
	apphttp "asvab_prep_backend/internal/http"
	"asvab_prep_backend/platform/validator"
)

// Module wires the bookmarks bounded context together.
type Module struct {
	handler *handler.Handler
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the bookmarks module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "bookmarks" }

// RegisterRoutes mounts bookmark endpoints, all behind auth.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.PUT("/bookmarks", m.handler.Toggle)
	ctx.Protected.GET("/bookmarks", m.handler.List)
}

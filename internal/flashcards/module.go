// Package flashcards implements the flashcard deck: admin-managed study
// cards with a review counter that feeds popularity ranking.
package flashcards

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"asvab_prep_backend/internal/flashcards/handler"
	"asvab_prep_backend/internal/flashcards/repository"
	"asvab_prep_backend/internal/flashcards/service"
	apphttp "asvab_prep_backend/internal/http"
	"asvab_prep_backend/platform/validator"
)

// Module wires the flashcards bounded context together.
type Module struct {
	handler *handler.Handler
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the flashcards module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "flashcards" }

// RegisterRoutes mounts flashcard endpoints. Reads are public, reviews need
// a signed-in user, and mutations are admin only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/flashcards", m.handler.List)
	ctx.V1.GET("/flashcards/:id", m.handler.Get)

	ctx.Protected.POST("/flashcards/:id/review", m.handler.Review)

	ctx.Admin.POST("/flashcards", m.handler.Create)
	ctx.Admin.PUT("/flashcards/:id", m.handler.Update)
	ctx.Admin.DELETE("/flashcards/:id", m.handler.Delete)
}

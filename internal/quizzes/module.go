// Package quizzes records finished practice quizzes and their per-question
// results. Attempt history drives personalization and question popularity.
package quizzes

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "asvab_prep_backend/internal/http"
	"asvab_prep_backend/internal/quizzes/handler"
	"asvab_prep_backend/internal/quizzes/repository"
	"asvab_prep_backend/internal/quizzes/service"
	"asvab_prep_backend/platform/validator"
)

// Module wires the quizzes bounded context together.
type Module struct {
	handler *handler.Handler
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the quizzes module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "quizzes" }

// RegisterRoutes mounts quiz attempt endpoints, all behind auth.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/quizzes/attempts", m.handler.RecordAttempt)
	ctx.Protected.GET("/quizzes/attempts", m.handler.ListAttempts)
}

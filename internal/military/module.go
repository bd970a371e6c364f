// Package military implements the military job catalog: MOS/AFSC/rating
// entries per branch with AFQT and line-score requirements.
package military

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "asvab_prep_backend/internal/http"
	"asvab_prep_backend/internal/military/handler"
	"asvab_prep_backend/internal/military/repository"
	"asvab_prep_backend/internal/military/service"
	"asvab_prep_backend/platform/validator"
)

// Module wires the military bounded context together.
type Module struct {
	handler *handler.Handler
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the military module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "military" }

// RegisterRoutes mounts military job endpoints. Reads are public; mutations
// are admin only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/military/jobs", m.handler.List)
	ctx.V1.GET("/military/jobs/:id", m.handler.Get)
	ctx.V1.GET("/military/branches", m.handler.Branches)

	ctx.Admin.POST("/military/jobs", m.handler.Create)
	ctx.Admin.PUT("/military/jobs/:id", m.handler.Update)
	ctx.Admin.DELETE("/military/jobs/:id", m.handler.Delete)
}

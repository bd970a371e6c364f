// Package groups implements study groups: user-owned groups with
// transactional membership counts and shareable QR invites.
package groups

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"asvab_prep_backend/internal/groups/handler"
	"asvab_prep_backend/internal/groups/repository"
	"asvab_prep_backend/internal/groups/service"
	apphttp "asvab_prep_backend/internal/http"
	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/validator"
)

// Module wires the groups bounded context together.
type Module struct {
	handler *handler.Handler
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the groups module.
func NewModule(pool *pgxpool.Pool, cfg config.AppConfig, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "groups" }

// RegisterRoutes mounts study group endpoints, all behind auth. The invite
// QR route accepts the access token as a query parameter for direct image
// embedding.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/groups", m.handler.List)
	ctx.Protected.GET("/groups/:id", m.handler.Get)
	ctx.Protected.POST("/groups", m.handler.Create)
	ctx.Protected.POST("/groups/:id/join", m.handler.Join)
	ctx.Protected.POST("/groups/:id/leave", m.handler.Leave)
	ctx.Protected.GET("/groups/:id/invite.png", m.handler.InviteQR)
}

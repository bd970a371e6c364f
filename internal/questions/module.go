// Package questions implements the question bank: admin-managed multiple
// choice questions with categories, difficulties, tags, and optional figure
// images stored in object storage.
package questions

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"asvab_prep_backend/internal/adapters/storage"
	apphttp "asvab_prep_backend/internal/http"
	"asvab_prep_backend/internal/questions/handler"
	"asvab_prep_backend/internal/questions/repository"
	"asvab_prep_backend/internal/questions/service"
	"asvab_prep_backend/platform/logger"
	"asvab_prep_backend/platform/validator"
)

// Module wires the questions bounded context together.
type Module struct {
	handler *handler.Handler
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the questions module. storageSvc may be nil when
// object storage is not configured.
func NewModule(pool *pgxpool.Pool, storageSvc storage.Service, figureBucket string, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, storageSvc, figureBucket, log)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "questions" }

// RegisterRoutes mounts question endpoints. Reads are public; mutations are
// admin only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/questions", m.handler.List)
	ctx.V1.GET("/questions/:id", m.handler.Get)
	ctx.V1.GET("/questions/:id/figure", m.handler.FigureDownloadURL)

	ctx.Admin.POST("/questions", m.handler.Create)
	ctx.Admin.PUT("/questions/:id", m.handler.Update)
	ctx.Admin.DELETE("/questions/:id", m.handler.Delete)
	ctx.Admin.POST("/questions/:id/figure-upload", m.handler.FigureUploadURL)
}

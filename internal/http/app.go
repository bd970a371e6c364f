package http

import (
	"context"

	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/logger"
)

// RouterConfig is the slice of configuration the router consumes.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker answers the readiness probe, normally with a DB ping.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is the composition root's hand-off to the router: everything main.go
// initialized, ready to serve.
type App struct {
	Config  RouterConfig
	Logger  *logger.Logger
	Health  HealthChecker
	Modules []Module
}

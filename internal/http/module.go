// Package http wires domain modules into the gin router.
package http

import (
	"asvab_prep_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is a bounded context that mounts its own routes. The router knows
// modules only through this interface.
type Module interface {
	// Name identifies the module in logs.
	Name() string
	// RegisterRoutes mounts the module's endpoints onto the shared groups.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext bundles the route groups and shared middleware modules
// mount their endpoints on.
type RouterContext struct {
	// V1 is the public /api/v1 group.
	V1 *gin.RouterGroup
	// Protected requires a valid access token.
	Protected *gin.RouterGroup
	// Admin additionally requires the admin role.
	Admin *gin.RouterGroup
	// AuthRateLimiter is the stricter limiter for credential endpoints.
	AuthRateLimiter *httpkit.AuthRateLimiter
}

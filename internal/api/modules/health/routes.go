package health

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency whose reachability is reported by the health route
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes registers the routes for the health module
func RegisterRoutes(g *gin.RouterGroup, pinger Pinger) {
	g.GET("/health", getStatus(pinger))
}

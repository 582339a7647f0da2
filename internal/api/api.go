package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/ethanbaker/states/internal/api/middleware"
	"github.com/ethanbaker/states/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	health_module "github.com/ethanbaker/states/internal/api/modules/health"
	states_module "github.com/ethanbaker/states/internal/api/modules/states"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

// NewEngine builds the gin engine with every module registered
func NewEngine(cfg *utils.Config, service *states_module.StatesService) *gin.Engine {
	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.RequestID(), middleware.NoStore())

	baseGroup := engine.Group("/")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup, service)
	states_module.RegisterRoutes(baseGroup, service.Service)

	return engine
}

// Start initializes the states module and serves the API until ctx is cancelled
func Start(ctx context.Context, cfg *utils.Config) error {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	service, err := states_module.Init(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize states module: %w", err)
	}
	defer service.Close()

	server := &http.Server{
		Addr:    ":" + port,
		Handler: NewEngine(cfg, service),
	}

	// Then after performing initial setup, start the server
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[API-MAIN]: Listening on :%s with %s fun fact store", port, service.Backend())
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[API-MAIN]: Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

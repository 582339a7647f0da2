package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethanbaker/states/internal/api"
	"github.com/ethanbaker/states/pkg/utils"
)

// Start the API server and stop it on SIGINT or SIGTERM
func main() {
	// Load global config, using ENV_FILE to point at a non-default env file
	envFile := utils.GetEnvWithDefault("ENV_FILE", ".env")
	cfg := utils.NewConfigFromEnv(envFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Start(ctx, cfg); err != nil {
		log.Fatal("[API-MAIN]: ", err)
	}
}

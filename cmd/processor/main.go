package main

import (
	"context"
	"log"

	"github.com/shestoi/payment-processor/internal/app"
	"github.com/shestoi/payment-processor/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Build собирает граф зависимостей, Run блокируется до graceful shutdown
	application, err := app.Build(cfg)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	if err := application.Run(context.Background()); err != nil {
		log.Fatalf("Service error: %v", err)
	}
}

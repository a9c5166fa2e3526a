package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/app/api"
)

func main() {
	// Optional .env for local development; the environment wins in deploys.
	_ = godotenv.Load()

	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api exited: %v", err)
	}
}

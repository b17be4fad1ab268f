package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"pocketledger/internal/server"
	"pocketledger/internal/server/config"
)

func main() {

	// optional .env for local development
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("PL_CONFIG_FILE"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}

	app.Run(ctx)
}

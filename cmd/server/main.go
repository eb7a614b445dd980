package main

import (
	"context"
	"log"

	"github.com/rjrato/Write-it-V2-Backend/internal/server"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}

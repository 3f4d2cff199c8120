package main

import (
	"context"
	"log"

	"agentic-sales-be/internal/bootstrap"
	"agentic-sales-be/internal/config"
	"agentic-sales-be/internal/server"
	"agentic-sales-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Workers
	if err := container.ScoringJobService.Start(context.Background()); err != nil {
		log.Printf("Background Scoring Worker Error: %v", err)
	}
	if err := container.LeadNotifierService.Start(); err != nil {
		log.Printf("Background Lead Notifier Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}

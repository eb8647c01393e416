package main

import (
	"context"
	"log"
	"os"

	"memoscribe-be/internal/bootstrap"
	"memoscribe-be/internal/config"
	"memoscribe-be/internal/server"
	"memoscribe-be/internal/tracer"
	"memoscribe-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := os.MkdirAll(cfg.App.UploadDir, 0o755); err != nil {
		log.Panicf("Unable to create upload dir: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: starting sync consumer...")
		if err := container.SyncService.Consume(context.Background()); err != nil {
			log.Printf("Background sync consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}

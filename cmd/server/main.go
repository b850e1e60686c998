package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"docvert/internal/config"
	"docvert/internal/handler"
	"docvert/internal/port"
	"docvert/internal/reader/docxreader"
	"docvert/internal/router"
	"docvert/internal/service"
	s3storage "docvert/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize document reader
	reader := docxreader.New()

	// Initialize archive storage (optional)
	var archive port.ObjectStorage
	if cfg.Archive.Enabled {
		archive, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize archive storage: %w", err)
		}
		log.Printf("archiving converted artifacts to bucket %s", cfg.Archive.Bucket)
	}

	// Initialize services
	convertSvc := service.NewConvertService(reader, archive, cfg, nil)

	// Initialize handlers
	convertH := handler.NewConvertHandler(convertSvc)
	healthH := handler.NewHealthHandler()

	var archiveH *handler.ArchiveHandler
	if archive != nil {
		archiveH = handler.NewArchiveHandler(archive, &cfg.Archive)
	}

	// Setup router
	r := router.Setup(cfg, convertH, archiveH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

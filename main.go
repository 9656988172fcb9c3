package main

import (
	"context"
	"fmt"
	"os"

	"campus-map/config"
	"campus-map/services"
	"campus-map/storage"
	"campus-map/utils"
	"campus-map/verify"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	logger.Info("=== Institution map build starting ===")
	logger.Debug("Config: data=%s | boundary=%s | output=%s | tiles=%s",
		cfg.DataFile, cfg.BoundaryFile, cfg.OutputFile, cfg.Map.Tiles)

	if err := run(context.Background(), cfg, logger); err != nil {
		fmt.Printf("Error creating map: %v\n", err)
		fmt.Println("\nPlease ensure:")
		fmt.Println("1. Your Excel file contains all required columns")
		fmt.Println("2. Image URLs are valid and accessible")
		fmt.Println("3. GeoJSON file exists and is valid")
		os.Exit(1)
	}

	fmt.Printf("Map created successfully! Open %s in a web browser to view.\n", cfg.OutputFile)
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	source, closeSource, err := openSource(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	pipeline := services.NewPipeline(cfg, source, logger)
	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	pipeline.Summary().Print(os.Stdout, report)

	if cfg.VerifyRender {
		n, err := verify.New(cfg.ChromeBin, cfg.MaxRetries, logger).CountMarkers(ctx, cfg.OutputFile)
		switch {
		case err != nil:
			logger.Warn("Render check failed: %v", err)
		case n != report.MarkersPlaced:
			logger.Warn("Render check: browser shows %d markers, expected %d", n, report.MarkersPlaced)
		default:
			logger.Info("Render check passed: %d markers visible", n)
		}
	}
	return nil
}

func openSource(cfg *config.Config, logger *utils.Logger) (storage.DatasetSource, func(), error) {
	if cfg.DatasetDSN == "" {
		return storage.NewFileSource(cfg.DataFile), func() {}, nil
	}

	pg, err := storage.NewPostgresSource(cfg.DatasetDSN, cfg.DatasetTable, cfg.Columns,
		storage.DefaultRetry(cfg.MaxRetries, logger))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Reading institutions from PostgreSQL table %s", cfg.DatasetTable)
	return pg, func() { _ = pg.Close() }, nil
}

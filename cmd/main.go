package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"shipseg/config"
	telegram "shipseg/internal/api"
	"shipseg/internal/container"
	"shipseg/internal/domain/port"
	"shipseg/internal/infrastructure/storage"
	"shipseg/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	format, err := storage.ParseMaskFormat(cfg.MaskFormat)
	if err != nil {
		log.Fatalf("Invalid MASK_FORMAT: %v", err)
	}

	dataset := storage.NewFileDataset(filepath.Clean(cfg.DatasetPath), cfg.ImageExt)
	writer, err := storage.NewFileMaskWriter(filepath.Clean(cfg.MaskDir), format)
	if err != nil {
		log.Fatalf("Failed to prepare mask output: %v", err)
	}

	var notifier port.Notifier
	if cfg.NotifyEnabled() {
		n, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Telegram notifications disabled: %v", err)
		} else {
			notifier = n
		}
	}

	appContainer := container.New(dataset, vision.NewLoader(), writer, notifier, cfg.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Writing %s masks for %s to %s", format, cfg.DatasetPath, cfg.MaskDir)
	report, err := appContainer.BatchService.Run(ctx)
	if err != nil {
		log.Fatalf("Mask generation aborted: %v", err)
	}

	if report.Failed > 0 {
		os.Exit(1)
	}
}

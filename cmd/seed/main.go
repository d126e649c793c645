// Package main provides a tool to seed the default tag set into a database.
//
// Useful for preparing a data directory before the first server start, or for
// backfilling expected media types on a registry created by an older build.
//
// Usage:
//
//	DATA_PATH=~/shoptag go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/shoptagapp/shoptag-server/internal/config"
	"github.com/shoptagapp/shoptag-server/internal/service"
	"github.com/shoptagapp/shoptag-server/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Opening database at: %s\n", cfg.Storage.DBPath())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := store.New(cfg.Storage.DBPath(), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	registry := service.NewRegistryService(s, logger)

	if err := registry.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed tag registry: %v", err)
	}

	tags, err := registry.ListTags(ctx)
	if err != nil {
		log.Fatalf("Failed to list tags: %v", err)
	}

	fmt.Printf("Registry holds %d tags:\n", len(tags))
	for _, tag := range tags {
		marker := " "
		if tag.Default {
			marker = "*"
		}
		fmt.Printf("  %s %-16s %-10s %-8s %s\n", marker, tag.Key, tag.Category, tag.ExpectedType, tag.Label)
	}
}

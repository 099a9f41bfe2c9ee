package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/psds-microservice/issue-service/internal/cache"
	"github.com/psds-microservice/issue-service/internal/config"
	"github.com/psds-microservice/issue-service/internal/database"
	"github.com/psds-microservice/issue-service/internal/store"
)

var warmCacheCmd = &cobra.Command{
	Use:   "warm-cache",
	Short: "Rewrite redis snapshots for all issues from the store",
	RunE:  runWarmCache,
}

func runWarmCache(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	_ = godotenv.Load("../../.env") // repo root when running from bin/
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg.Mongo.URL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer database.Disconnect(context.Background(), client)

	issueStore := store.NewIssueStore(database.IssueCollection(client, cfg.Mongo.Database))
	issues, err := issueStore.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("list issues: %w", err)
	}
	log.Printf("warm-cache: found %d issues", len(issues))

	snapshotCache := cache.New(cfg.Cache.RedisURL, cfg.Cache.TTL)
	if err := snapshotCache.Open(ctx); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer snapshotCache.Close()

	written := 0
	for i := range issues {
		if snapshotCache.Set(ctx, issues[i].ID.Hex(), &issues[i]) {
			written++
		}
		if (i+1)%50 == 0 || i == len(issues)-1 {
			log.Printf("warm-cache: processed %d/%d", i+1, len(issues))
		}
	}
	log.Printf("warm-cache: done, %d/%d snapshots written (TTL %s)", written, len(issues), cfg.Cache.TTL)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/psds-microservice/issue-service/internal/config"
	"github.com/psds-microservice/issue-service/internal/database"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Manage issue collection indexes",
}

var indexesEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Create all required indexes",
	RunE:  runIndexesEnsure,
}

func init() {
	indexesCmd.AddCommand(indexesEnsureCmd)
}

func runIndexesEnsure(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg.Mongo.URL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer database.Disconnect(context.Background(), client)

	if err := database.EnsureIndexes(ctx, client, cfg.Mongo.Database); err != nil {
		return err
	}
	log.Println("indexes ensure: ok")
	return nil
}

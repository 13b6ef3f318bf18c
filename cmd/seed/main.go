package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"shareit/internal/database"
	"shareit/internal/seed"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		fixturesPath = flag.String("file", "configs/fixtures.yaml", "path to fixtures yaml")
		dbPath       = flag.String("db", "./data/shareit.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*fixturesPath)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}
	fixtures, err := seed.Parse(data)
	if err != nil {
		return err
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := seed.Apply(ctx, db, fixtures)
	if err != nil {
		return err
	}

	logger.Info().
		Int("users_created", res.UsersCreated).
		Int("users_updated", res.UsersUpdated).
		Int("items_created", res.ItemsCreated).
		Int("items_updated", res.ItemsUpdated).
		Msg("seed done")
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kafelab/coffee-lab-backend/internal/adapters/database"
	"github.com/kafelab/coffee-lab-backend/internal/adapters/search"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/postgres"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/typesense"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/observability"
	"github.com/kafelab/coffee-lab-backend/pkg/config"
)

// indexer rebuilds the Typesense catalog index from Postgres. Run it
// after bulk catalog changes or when standing up a fresh search node.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("coffee-lab-indexer", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Typesense client")
	}

	adapter := search.NewTypesenseAdapter(typesenseClient)
	if err := adapter.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to init Typesense schema")
	}

	coffeeRepo := database.NewCoffeeAdapter(pgClient)
	coffees, err := coffeeRepo.ListActive(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list catalog")
	}

	indexed := 0
	for _, coffee := range coffees {
		if err := adapter.Index(ctx, coffee); err != nil {
			log.Error().Err(err).Str("coffee_id", coffee.ID).Msg("failed to index coffee")
			continue
		}
		indexed++
	}

	log.Info().Int("indexed", indexed).Int("total", len(coffees)).Msg("catalog index rebuilt")
}

package main

import (
	"context"
	"flag"
	"log"

	"github.com/ChaandiniV/PeriCareAIBot/internal/knowledge"
	"github.com/ChaandiniV/PeriCareAIBot/internal/repository"
	"github.com/ChaandiniV/PeriCareAIBot/pkg/config"
	"github.com/ChaandiniV/PeriCareAIBot/pkg/logger"
	"github.com/ChaandiniV/PeriCareAIBot/pkg/postgres"

	"go.uber.org/zap"
)

// Seeds the Postgres record table from the JSON knowledge document, for
// deployments that run with KNOWLEDGE_SOURCE=postgres.
func main() {
	reset := flag.Bool("reset", false, "truncate the records table before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()

	store, err := knowledge.LoadFile(cfg.Knowledge.Path, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load knowledge source", zap.Error(err))
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	recordRepo := repository.NewRecordRepository(db, appLogger)

	if err := recordRepo.EnsureSchema(ctx); err != nil {
		appLogger.Fatal("Failed to ensure schema", zap.Error(err))
	}

	if *reset {
		if err := recordRepo.Truncate(ctx); err != nil {
			appLogger.Fatal("Failed to truncate records table", zap.Error(err))
		}
		appLogger.Info("Records table truncated")
	}

	appLogger.Info("Seeding records", zap.Int("count", store.Len()))
	for i, rec := range store.Records() {
		if err := recordRepo.Insert(ctx, &rec, i); err != nil {
			appLogger.Fatal("Failed to insert record",
				zap.Int("position", i),
				zap.String("question", rec.Question),
				zap.Error(err),
			)
		}
	}

	appLogger.Info("Seeding completed", zap.Int("records", store.Len()))
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChaandiniV/PeriCareAIBot/internal/api"
	"github.com/ChaandiniV/PeriCareAIBot/internal/api/handlers"
	"github.com/ChaandiniV/PeriCareAIBot/internal/knowledge"
	"github.com/ChaandiniV/PeriCareAIBot/internal/repository"
	"github.com/ChaandiniV/PeriCareAIBot/internal/service"
	"github.com/ChaandiniV/PeriCareAIBot/pkg/config"
	"github.com/ChaandiniV/PeriCareAIBot/pkg/logger"
	"github.com/ChaandiniV/PeriCareAIBot/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting PeriCare assistant")

	ctx := context.Background()

	// Build the record store. Load failures are fatal: the service must not
	// start with a partial or missing knowledge base.
	var store *knowledge.Store
	switch cfg.Knowledge.Source {
	case "postgres":
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		recordRepo := repository.NewRecordRepository(db, appLogger)
		records, err := recordRepo.ListAll(ctx)
		if err != nil {
			appLogger.Fatal("Failed to load records from database", zap.Error(err))
		}
		store = knowledge.NewStore(records, appLogger)
	default:
		store, err = knowledge.LoadFile(cfg.Knowledge.Path, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to load knowledge base", zap.Error(err))
		}
	}

	if store.Len() == 0 {
		appLogger.Fatal("Knowledge base is empty")
	}

	// Initialize services
	llmService, err := service.NewLLMService(&cfg.GigaChat, cfg.Search.MaxPromptRecords, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	chatService := service.NewChatService(store, llmService, &cfg.Search, appLogger)

	// Initialize handlers and router
	chatHandler := handlers.NewChatHandler(chatService, store, appLogger)
	app := api.SetupRouter(chatHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

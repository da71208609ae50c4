package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tnqbao/gau-bakery-service/config"
	"github.com/tnqbao/gau-bakery-service/consumer/worker"
	infraPkg "github.com/tnqbao/gau-bakery-service/infra"
	"github.com/tnqbao/gau-bakery-service/repository"
	"github.com/tnqbao/gau-bakery-service/service"
)

func main() {
	err := godotenv.Load("../.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	// Initialize context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if infra.RabbitMQ != nil {
		assetConsumer := worker.NewAssetConsumer(infra.RabbitMQ.Channel, infra.Assets, infra.Logger)
		if err := assetConsumer.Start(ctx); err != nil {
			infra.Logger.ErrorWithContextf(ctx, err, "Failed to start Asset consumer: %v", err)
			log.Fatalf("Failed to start Asset consumer: %v", err)
		}
	} else {
		infra.Logger.WarningWithContextf(ctx, "RabbitMQ not configured, asset cleanup consumer disabled")
	}

	if interval := cfg.EnvConfig.Reconcile.Interval; interval > 0 {
		reconciler := service.NewReconciler(repo.ItemRepo, infra.Assets, infra.Logger, cfg.EnvConfig.Reconcile.Grace)
		go worker.RunReconciler(ctx, reconciler, interval, infra.Logger)
	}

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := infra.Close(shutdownCtx); err != nil {
		log.Printf("Failed to release infrastructure: %v", err)
	}

	infra.Logger.InfoWithContextf(shutdownCtx, "Consumer exited properly")
}

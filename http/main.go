package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tnqbao/gau-bakery-service/config"
	"github.com/tnqbao/gau-bakery-service/http/controller"
	routes "github.com/tnqbao/gau-bakery-service/http/route"
	infraPkg "github.com/tnqbao/gau-bakery-service/infra"
	"github.com/tnqbao/gau-bakery-service/repository"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	srv := &http.Server{
		Addr:              ":" + cfg.EnvConfig.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("HTTP Server started on " + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	infra.Logger.InfoWithContextf(ctx, "Shutting down HTTP server...")
	if err := srv.Shutdown(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "HTTP server forced to shutdown: %v", err)
	}
	if err := infra.Close(ctx); err != nil {
		log.Printf("Failed to release infrastructure: %v", err)
	}
	log.Println("HTTP server exited properly")
}

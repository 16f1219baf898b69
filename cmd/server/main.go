package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api"
	"github.com/aryanpatil97/Blockchain-Voting/internal/contract"
	"github.com/aryanpatil97/Blockchain-Voting/internal/database"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/config"
	"github.com/aryanpatil97/Blockchain-Voting/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs/server.yaml")
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger := logger.NewLogger(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})
	appLogger.Info("Starting election ledger server...")

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to audit store: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.Database.Type); err != nil {
		appLogger.Fatal("Failed to run migrations: %v", err)
	}

	system, err := contract.NewVotingSystem(cfg.DeployerAddress(), nil)
	if err != nil {
		appLogger.Fatal("Failed to initialize ledger: %v", err)
	}
	appLogger.Info("Ledger initialized - deployer: %s", cfg.Ledger.DeployerAddress)

	services := api.NewServices(system, db, appLogger, cfg)
	if err := services.Start(); err != nil {
		appLogger.Fatal("Failed to start services: %v", err)
	}
	defer services.Stop()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	api.SetupRoutes(router, services)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown: %v", err)
	}
	appLogger.Info("Server stopped")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruralpay/banksim/internal/audit"
	"github.com/ruralpay/banksim/internal/config"
	"github.com/ruralpay/banksim/internal/database"
	"github.com/ruralpay/banksim/internal/handlers"
	"github.com/ruralpay/banksim/internal/services"
)

// @title Bank Simulator API
// @version 1.0
// @description In-memory banking core: accounts, transfers, bills and train tickets
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg := config.Load(".env")

	redisClient := database.InitRedis(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	bank := services.NewBank(services.BankOptions{
		Argon2: cfg.Argon2,
		Audit:  audit.NewLogger(),
		Clock:  time.Now,
	})

	router := handlers.NewRouter(handlers.Dependencies{
		Bank:           bank,
		Sessions:       services.NewSessionService(cfg.JWT, redisClient, time.Now),
		ISO20022:       services.NewISO20022Service(cfg.Bank),
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}

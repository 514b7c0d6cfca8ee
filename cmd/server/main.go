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

	"github.com/remi-assist/remi-backend/internal/api"
	"github.com/remi-assist/remi-backend/internal/auth"
	"github.com/remi-assist/remi-backend/internal/config"
	"github.com/remi-assist/remi-backend/internal/core"
	"github.com/remi-assist/remi-backend/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Initialize record store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	recordStore, err := store.NewMongoStore(ctx, config.AppConfig.MongoURI, config.AppConfig.MongoDB)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize record store: %v", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := recordStore.Close(closeCtx); err != nil {
			log.Printf("Error closing record store: %v", err)
		}
	}()

	// Initialize LLM service
	llmService := core.NewLLMService(config.AppConfig.GeminiAPIKey)
	defer llmService.Close()

	// Initialize assistant service and token verifier
	assistant := core.NewAssistantService(recordStore, llmService, core.DefaultPromptTemplate())
	verifier := auth.NewVerifier(config.AppConfig.JWTSecret)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(assistant, recordStore, verifier)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active connections time to finish before forcing the shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goscores/internal"
	"goscores/internal/config"
	"goscores/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.SetDefaultLevel(internal.ParseLogLevel(appConfig.LogLevel))

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), appConfig.Dataset.Timeout)
	appContainer, err := container.New(loadCtx, appConfig)
	cancelLoad()
	if err != nil {
		log.Fatalf("Failed to load dataset from %s: %v", appConfig.Dataset.Source, err)
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := appContainer.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting goscores with %d students (dataset %s)", appContainer.Dataset.Len(), appContainer.Dataset.Fingerprint())
	if err := appContainer.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

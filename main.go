package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sheetboard/internal/config"
	"sheetboard/internal/container"
	"sheetboard/ui"
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
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx, appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	server := ui.NewServer(c.ImportService, appConfig.Import)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting sheetboard on http://localhost:%s", appConfig.Server.Port)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}

	if err := c.Shutdown(context.Background()); err != nil {
		log.Printf("Container shutdown error: %v", err)
	}
}

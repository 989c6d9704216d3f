package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sheetboard/adapters/api"
	"sheetboard/internal/config"
	"sheetboard/internal/container"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx, appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Shutdown(context.Background())

	handler := api.NewHandler(c.ImportService, appConfig.Import)
	srv := &http.Server{
		Addr:              ":" + appConfig.Server.APIPort,
		Handler:           api.NewRouter(handler, appConfig.Server.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("API shutdown error: %v", err)
		}
	}()

	log.Printf("Starting sheetboard API on http://localhost:%s", appConfig.Server.APIPort)
	log.Printf("CORS enabled for: %v", appConfig.Server.CORSOrigins)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("API server failed: %v", err)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/planpilot-ai/planpilot"
	"github.com/planpilot-ai/planpilot/pkg/observability"
)

var (
	// Version information (set via ldflags)
	Version = "dev"

	configFile = flag.String("config", getEnv("CONFIG_FILE", "config/planpilot.yaml"), "Service configuration file")
)

func main() {
	flag.Parse()

	log.Printf("Starting PlanPilot v%s", Version)
	log.Printf("Config: %s", *configFile)

	observability.InitMetrics()
	healthChecker := observability.InitHealthChecker()
	healthChecker.RegisterCheck(observability.PingCheck())

	app, err := planpilot.Load(*configFile)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := app.Serve(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Printf("Error: %v", err)
	case <-quit:
		log.Println("Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("PlanPilot stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

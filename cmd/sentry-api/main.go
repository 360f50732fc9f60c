package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"NetSentry/internal/config"
	"NetSentry/internal/query"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !cfg.Report.ClickHouse.Enabled {
		log.Fatalf("ClickHouse reporting is disabled in config. API server cannot start.")
	}

	// Initialize querier
	querier, err := query.NewClickHouseQuerier(cfg.Report.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to create querier: %v", err)
	}

	// Initialize router
	r := mux.NewRouter()

	apiHandler := &APIHandler{querier: querier}

	r.HandleFunc("/api/v1/events", apiHandler.eventsHandler).Methods("GET")
	r.HandleFunc("/api/v1/sources/top", apiHandler.topSourcesHandler).Methods("GET")

	// Start HTTP server
	server := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("API server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("API server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("API server stopped.")
}

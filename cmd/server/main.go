/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the civil-service pay calculator server.
  Handles configuration, reference data loading, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse environment config, then command-line flag overrides
  2. Load reference data (JSON directory or SQLite snapshot)
  3. Create API handler and router
  4. Start server with graceful shutdown

CONFIGURATION:
  Environment variables (flags of the same meaning override them):
    PORT      HTTP server port (default: 8080)        -port
    DATA_DIR  Reference JSON directory (default: ./data) -data
    SNAPSHOT  SQLite snapshot path; set to serve from a
              snapshot instead of the JSON files        -snapshot

EXAMPLES:
  # Serve from the JSON data files
  ./server -data=./data

  # Build a snapshot from the JSON files, then serve from it
  ./server -data=./data -build-snapshot=./data/refdata.db
  ./server -snapshot=./data/refdata.db

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - refdata/: Data loading
  - store/sqlite/: Snapshot packaging
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/seagullcanfly/civilbuddy/api"
	"github.com/seagullcanfly/civilbuddy/refdata"
	"github.com/seagullcanfly/civilbuddy/store/sqlite"
)

type config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	DataDir  string `env:"DATA_DIR" envDefault:"./data"`
	Snapshot string `env:"SNAPSHOT"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	// Flags override the environment.
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dataDir := flag.String("data", cfg.DataDir, "Reference data directory (JSON files)")
	snapshot := flag.String("snapshot", cfg.Snapshot, "Serve from a SQLite snapshot instead of JSON files")
	buildSnapshot := flag.String("build-snapshot", "", "Import the JSON data into a snapshot at this path and exit")
	flag.Parse()

	if *buildSnapshot != "" {
		mem, err := refdata.Load(*dataDir)
		if err != nil {
			log.Fatalf("Failed to load reference data: %v", err)
		}
		if err := sqlite.Create(*buildSnapshot, mem); err != nil {
			log.Fatalf("Failed to build snapshot: %v", err)
		}
		log.Printf("Snapshot written to %s", *buildSnapshot)
		return
	}

	store, cleanup, err := openStore(*dataDir, *snapshot)
	if err != nil {
		log.Fatalf("Failed to load reference data: %v", err)
	}
	defer cleanup()

	handler := api.NewHandler(store)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func openStore(dataDir, snapshot string) (refdata.Store, func(), error) {
	if snapshot != "" {
		store, err := sqlite.Open(snapshot)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}

	mem, err := refdata.Load(dataDir)
	if err != nil {
		return nil, nil, err
	}
	return mem, func() {}, nil
}

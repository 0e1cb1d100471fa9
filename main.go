package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autoagora/catalog"
	"autoagora/config"
	"autoagora/logging"
	"autoagora/server"
	"autoagora/storage"
)

var (
	loadOnly = flag.Bool("load", false, "Build the collection, persist it, and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := logging.Setup(cfg.LogPath)
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting autoagora...")
	log.Printf("Data directory: %s", cfg.DataDir)
	log.Printf("Sources configured: %d", len(cfg.Sources))

	// The collection is built eagerly so the first request pays nothing;
	// a failed or empty build still serves (a degraded, empty result set
	// beats not starting at all).
	cat := catalog.New(cfg)
	started := time.Now()
	listings := cat.All()
	log.Printf("Collection built in %s (%d listings)", time.Since(started).Round(time.Millisecond), len(listings))

	persist(cfg, cat)

	if *loadOnly {
		log.Println("Load complete, exiting")
		return
	}

	srv := server.New(cfg, cat)
	go func() {
		if err := srv.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()
	log.Printf("Listening on %s", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Warning: shutdown error: %v", err)
	}
	log.Println("Goodbye!")
}

// persist snapshots the built collection into SQLite and, when a
// DATABASE_URL is configured, Postgres. Both sinks are best-effort: a
// storage failure is logged and serving continues.
func persist(cfg *config.Config, cat *catalog.Catalog) {
	listings := cat.All()

	sqliteStore, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Printf("Warning: could not open SQLite store: %v", err)
	} else {
		defer sqliteStore.Close()
		if err := sqliteStore.ReplaceAll(listings); err != nil {
			log.Printf("Warning: SQLite snapshot failed: %v", err)
		} else {
			log.Printf("SQLite snapshot written: %s", cfg.DBPath)
		}
	}

	if cfg.DatabaseURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pgStore, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: could not connect to Postgres: %v", err)
		return
	}
	defer pgStore.Close()

	if err := pgStore.ReplaceAll(ctx, listings); err != nil {
		log.Printf("Warning: Postgres snapshot failed: %v", err)
	} else {
		log.Println("Postgres snapshot written")
	}
}

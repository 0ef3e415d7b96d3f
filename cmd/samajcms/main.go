// Command samajcms runs the community website API server. Set DATABASE_PATH
// to use SQLite; without it the server runs on a seeded in-memory store.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/samaj-web/samajcms"
)

func main() {
	var cfg samajcms.Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}

	var store samajcms.Storage
	if cfg.DatabasePath != "" {
		sqlStore, err := samajcms.NewSQLStore(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("open database %s: %v", cfg.DatabasePath, err)
		}
		if err := sqlStore.Bootstrap(context.Background(), cfg.AdminPassword); err != nil {
			log.Fatalf("bootstrap database: %v", err)
		}
		store = sqlStore
		log.Printf("using sqlite storage at %s", cfg.DatabasePath)
	} else {
		store = samajcms.NewMemStore()
		log.Printf("DATABASE_PATH not set, using in-memory storage")
	}

	app := samajcms.New(cfg, store)
	defer app.Close()

	go func() {
		if err := app.Start(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Echo.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/sotkon/dre-radar/internal/api"
	"github.com/sotkon/dre-radar/internal/config"
	"github.com/sotkon/dre-radar/internal/ingest"
	"github.com/sotkon/dre-radar/internal/records"
	"github.com/sotkon/dre-radar/internal/seeds"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := seeds.Open(cfg.Data.SeedStorePath)
	if err != nil {
		log.Fatalf("Failed to open seed store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Seeds are optional: a failed remote fetch leaves the local list.
	if remote := seeds.FetchRemote(ctx, cfg.Data.RemoteSeedsURL); remote != nil {
		if added, err := store.MergeRemote(remote); err != nil {
			log.Printf("Seed merge failed: %v", err)
		} else if added > 0 {
			log.Printf("Merged %d remote seeds", added)
		}
	}

	// Records are essential: a failed load keeps the server up in an
	// explicit error state serving zero records.
	recs, loadErr := records.Load(ctx, filepath.Join(cfg.Data.Dir, ingest.ActiveFile))
	if loadErr != nil {
		log.Printf("Record load failed, serving error state: %v", loadErr)
	} else {
		log.Printf("Loaded %d records", len(recs))
	}

	srv := api.NewServer(recs, loadErr, store, cfg.Server.CORSOrigins)
	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := srv.Echo.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}

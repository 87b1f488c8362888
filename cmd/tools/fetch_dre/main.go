package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sotkon/dre-radar/internal/config"
	"github.com/sotkon/dre-radar/internal/ingest"
	"github.com/sotkon/dre-radar/internal/records"
	"github.com/sotkon/dre-radar/internal/rss"
	"github.com/sotkon/dre-radar/internal/seeds"
)

// Runs one DRE ingestion and regenerates the seed-filtered RSS feed.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	stats, err := ingest.NewPipeline(cfg).Run(ctx)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
	log.Printf("Run %s: %d found, %d fetched, %d reused, %d errors, %d active (%s)",
		stats.RunID, stats.ItemsFound, stats.DetailsFetched, stats.Reused,
		stats.Errors, stats.Active, stats.CompletedAt.Sub(stats.StartedAt).Round(time.Second))

	if err := writeFilteredFeed(ctx, cfg); err != nil {
		log.Printf("Filtered feed skipped: %v", err)
	}
}

func writeFilteredFeed(ctx context.Context, cfg *config.Config) error {
	store, err := seeds.Open(cfg.Data.SeedStorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.Load()
	if err != nil {
		return err
	}

	actives, err := records.Load(ctx, filepath.Join(cfg.Data.Dir, ingest.ActiveFile))
	if err != nil {
		return err
	}

	out, count, err := rss.Generate(actives, list, time.Now())
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Data.Dir, "feed_filtros_seeds.xml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return err
	}
	log.Printf("Filtered feed written to %s (%d items)", path, count)
	return nil
}

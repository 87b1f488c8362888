package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sotkon/dre-radar/internal/config"
	"github.com/sotkon/dre-radar/internal/models"
	"github.com/sotkon/dre-radar/internal/records"
)

// ActiveFile is the record set the dashboard serves.
const ActiveFile = "ativos.json"

// RunStats summarizes one pipeline run.
type RunStats struct {
	RunID          string    `json:"run_id"`
	ItemsFound     int       `json:"items_found"`
	DetailsFetched int       `json:"details_fetched"`
	Reused         int       `json:"reused"`
	Errors         int       `json:"errors"`
	Active         int       `json:"active"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Pipeline runs the DRE ingestion: feed → detail pages → merged, pruned
// active set on disk.
type Pipeline struct {
	cfg     *config.Config
	fetcher *DetailFetcher
}

// NewPipeline builds a pipeline from the configuration.
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		fetcher: NewDetailFetcher(cfg.Fetch),
	}
}

// Run executes one full ingestion. Records whose link is already known with
// details are reused instead of re-scraped; a failed detail fetch keeps the
// bare feed item so one bad page never aborts the run.
func (pl *Pipeline) Run(ctx context.Context) (RunStats, error) {
	stats := RunStats{
		RunID:     uuid.New().String()[:8],
		StartedAt: time.Now(),
	}

	feedXML, err := pl.fetchFeed(ctx)
	if err != nil {
		return stats, err
	}

	items, err := ParseFeed(feedXML)
	if err != nil {
		return stats, err
	}
	stats.ItemsFound = len(items)
	log.Printf("[ingest %s] feed yielded %d items", stats.RunID, len(items))

	existing := pl.loadExisting()
	known := make(map[string]models.Procedimento, len(existing))
	for _, p := range existing {
		known[p.Link] = p
	}

	completos := make([]models.Procedimento, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if prev, ok := known[item.Link]; ok && prev.DetalhesCompletos != "" {
			completos = append(completos, prev)
			stats.Reused++
			continue
		}

		p := models.Procedimento{
			NumeroProcedimento: item.Numero,
			Entidade:           item.Entidade,
			Link:               item.Link,
		}

		pageHTML, err := pl.fetcher.FetchHTML(ctx, item.Link)
		if err != nil {
			log.Printf("[ingest %s] %s: %v", stats.RunID, item.Link, err)
			stats.Errors++
			completos = append(completos, p)
			continue
		}

		if details := ExtractDetails(pageHTML); details != "" {
			ApplyDetails(&p, details)
			stats.DetailsFetched++
		} else {
			stats.Errors++
		}
		completos = append(completos, p)
	}

	now := time.Now()
	if err := pl.writeSnapshot(completos, now); err != nil {
		log.Printf("[ingest %s] snapshot: %v", stats.RunID, err)
	}

	actives := records.Merge(existing, records.PruneExpired(completos, now), now)
	if err := pl.writeJSON(filepath.Join(pl.cfg.Data.Dir, ActiveFile), actives); err != nil {
		return stats, err
	}

	stats.Active = len(actives)
	stats.CompletedAt = time.Now()
	return stats, nil
}

func (pl *Pipeline) fetchFeed(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pl.cfg.Feed.URL, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: time.Duration(pl.cfg.Fetch.TimeoutSeconds) * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching feed: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// loadExisting reads the current active set; a missing or unreadable file
// just means a cold start.
func (pl *Pipeline) loadExisting() []models.Procedimento {
	list, err := records.Load(context.Background(), filepath.Join(pl.cfg.Data.Dir, ActiveFile))
	if err != nil {
		return nil
	}
	return list
}

// writeSnapshot saves the full day's harvest under DD-MM-YYYY.json.
func (pl *Pipeline) writeSnapshot(list []models.Procedimento, now time.Time) error {
	name := now.Format("02-01-2006") + ".json"
	return pl.writeJSON(filepath.Join(pl.cfg.Data.Dir, name), list)
}

func (pl *Pipeline) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

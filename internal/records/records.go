// Package records loads the procurement record set and manages which
// records are still active (proposal deadline not yet passed).
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sotkon/dre-radar/internal/models"
)

const deadlineLayout = "2-1-2006 15:04"

// Load reads the record set from a local file path or an http(s) URL as a
// single JSON array. Records are essential: any failure is returned so the
// caller can enter an explicit error state instead of showing stale data.
func Load(ctx context.Context, source string) ([]models.Procedimento, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return loadURL(ctx, source)
	}
	return loadFile(source)
}

func loadFile(path string) ([]models.Procedimento, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return decode(data)
}

func loadURL(ctx context.Context, url string) ([]models.Procedimento, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching records: unexpected status %d", resp.StatusCode)
	}

	var list []models.Procedimento
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return list, nil
}

func decode(data []byte) ([]models.Procedimento, error) {
	var list []models.Procedimento
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return list, nil
}

// IsActive reports whether the proposal deadline ("DD-MM-YYYY HH:MM") of a
// record is still in the future. A missing, "N/A" or unparseable deadline
// counts as inactive.
func IsActive(p models.Procedimento, now time.Time) bool {
	raw := p.PrazoPropostas
	if raw == "" || raw == "N/A" {
		return false
	}
	deadline, err := time.ParseInLocation(deadlineLayout, raw, now.Location())
	if err != nil {
		return false
	}
	return !deadline.Before(now)
}

// PruneExpired keeps only records still active at now, preserving order.
func PruneExpired(list []models.Procedimento, now time.Time) []models.Procedimento {
	out := make([]models.Procedimento, 0, len(list))
	for _, p := range list {
		if IsActive(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// Merge combines freshly fetched records with the existing active set:
// existing entries keep their position, incoming records whose link is new
// are appended, and the result is re-pruned because entries may have
// expired since the last run.
func Merge(existing, incoming []models.Procedimento, now time.Time) []models.Procedimento {
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Link] = true
	}

	merged := make([]models.Procedimento, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	for _, p := range incoming {
		if p.Link != "" && seen[p.Link] {
			continue
		}
		merged = append(merged, p)
	}

	return PruneExpired(merged, now)
}

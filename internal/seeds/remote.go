package seeds

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sotkon/dre-radar/internal/models"
)

// FetchRemote performs the one-shot fetch of the optional read-only seeds
// document. Seeds are a convenience, not essential data, so every failure —
// network, status, malformed body — yields nil instead of an error.
func FetchRemote(ctx context.Context, url string) []models.Seed {
	if url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var list []models.Seed
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil
	}
	return list
}

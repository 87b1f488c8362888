package seeds

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sotkon/dre-radar/internal/models"
)

// storageKey is the fixed key the serialized seed list lives under, the
// same name the browser front-end used in localStorage.
const storageKey = "dre_seeds"

// Store persists the seed list in a single-file SQLite key-value table.
// Seeds are only ever appended; the store never edits or deletes one.
type Store struct {
	db *sql.DB
}

// Open opens or creates the seed store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening seed store: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns every known seed. A missing key or a corrupt stored value is
// treated as "no local seeds", never as a fatal error.
func (s *Store) Load() ([]models.Seed, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, storageKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading seeds: %w", err)
	}

	var list []models.Seed
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, nil
	}
	return list, nil
}

// Append adds one seed to the stored list.
func (s *Store) Append(seed models.Seed) error {
	list, err := s.Load()
	if err != nil {
		return err
	}
	return s.save(append(list, seed))
}

// Find looks up a seed by code. Lookups are always performed against the
// uppercased input.
func (s *Store) Find(code string) (models.Seed, bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	list, err := s.Load()
	if err != nil {
		return models.Seed{}, false, err
	}
	for _, seed := range list {
		if seed.Code == code {
			return seed, true, nil
		}
	}
	return models.Seed{}, false, nil
}

// MergeRemote folds a read-only remote seed document into the store: seeds
// whose code is unknown locally are appended, conflicting codes keep the
// local version. Returns how many were added.
func (s *Store) MergeRemote(remote []models.Seed) (int, error) {
	list, err := s.Load()
	if err != nil {
		return 0, err
	}

	known := make(map[string]bool, len(list))
	for _, seed := range list {
		known[seed.Code] = true
	}

	added := 0
	for _, seed := range remote {
		if seed.Code == "" || known[seed.Code] {
			continue
		}
		known[seed.Code] = true
		list = append(list, seed)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.save(list)
}

func (s *Store) save(list []models.Seed) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding seeds: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		storageKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("writing seeds: %w", err)
	}
	return nil
}

package seeds

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotkon/dre-radar/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "seeds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreLoadEmpty(t *testing.T) {
	store := openTestStore(t)

	list, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, list)
}

func TestStoreAppendAndLoad(t *testing.T) {
	store := openTestStore(t)

	first := models.Seed{Code: "SEEDAAA111", Tags: []string{"obras"}, Name: "obras"}
	second := models.Seed{Code: "SEEDBBB222", TitleTags: []string{"escola"}, District: "Braga", Name: "escola"}

	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	list, err := store.Load()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0])
	assert.Equal(t, second, list[1])
}

func TestStoreFind(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Append(models.Seed{Code: "SEEDAAA111", Tags: []string{"obras"}}))

	seed, ok, err := store.Find("  seedaaa111 ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "SEEDAAA111", seed.Code)

	_, ok, err = store.Find("SEEDZZZ999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreCorruptValueMeansEmpty(t *testing.T) {
	store := openTestStore(t)

	_, err := store.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)`,
		storageKey, "{not json",
	)
	require.NoError(t, err)

	list, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, list)
}

func TestStoreMergeRemote(t *testing.T) {
	store := openTestStore(t)
	local := models.Seed{Code: "SEEDAAA111", Name: "local version"}
	require.NoError(t, store.Append(local))

	remote := []models.Seed{
		{Code: "SEEDAAA111", Name: "remote version"},
		{Code: "SEEDCCC333", Name: "remote only"},
		{Code: ""},
	}

	added, err := store.MergeRemote(remote)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	list, err := store.Load()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "local version", list[0].Name, "conflicting codes keep the local seed")
	assert.Equal(t, "SEEDCCC333", list[1].Code)
}

func TestStoredSeedMatchesLikeFreshSeed(t *testing.T) {
	store := openTestStore(t)

	seed, err := New([]string{"Obras"}, []string{"Escola"}, "Braga")
	require.NoError(t, err)
	require.NoError(t, store.Append(seed))

	list, err := store.Load()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, seed, list[0], "a round-tripped seed must filter identically")
}

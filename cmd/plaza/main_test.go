package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plaza/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
	"github.com/custodia-labs/plaza/internal/core/services"
	"github.com/custodia-labs/plaza/internal/core/store"
)

func TestOpenBackend_Memory(t *testing.T) {
	b, err := openBackend("", "memory")
	require.NoError(t, err)
	defer b.close()

	profiles, err := b.profiles.SearchProfiles(context.Background(), driven.IndexQuery{Text: "alice", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestOpenBackend_SQLite(t *testing.T) {
	b, err := openBackend(t.TempDir(), "sqlite")
	require.NoError(t, err)
	defer b.close()

	notes, err := b.contents.SearchNotes(context.Background(), driven.IndexQuery{Text: "gm", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestOpenBackend_Unknown(t *testing.T) {
	_, err := openBackend("", "postgres")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpenBackend_MemoryKeepsSettingsOffDisk(t *testing.T) {
	home := t.TempDir()
	b, err := openBackend(home, "memory")
	require.NoError(t, err)
	defer b.close()

	assert.IsType(t, &memory.ConfigStore{}, b.config)
	assert.Empty(t, b.configPath, "no file to watch")

	settings := services.NewSettingsService(b.config, store.New(domain.DefaultSearchPreferences()))
	require.NoError(t, settings.SetStrategy(domain.StrategyDate))
	got, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyDate, got.Search.Strategy)

	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenBackend_SQLiteWatchesConfigFile(t *testing.T) {
	home := t.TempDir()
	b, err := openBackend(home, "")
	require.NoError(t, err)
	defer b.close()

	assert.Equal(t, home, filepath.Dir(b.configPath))
	require.NoError(t, b.config.Set("search.strategy", "date"))
	_, err = os.Stat(b.configPath)
	assert.NoError(t, err)
}

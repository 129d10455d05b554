package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.Categories)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Recurring.KeyWordCount)
	assert.NotEmpty(t, cfg.Enrich.Prefixes)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subtrack.yaml")

	want := Default()
	want.VendorCategories = map[string]string{"Tom Sushi": "Favorites"}
	want.Recurring.GranularityUnits = 10
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subtrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestTables(t *testing.T) {
	cfg := Default()
	tables := cfg.Tables()
	assert.Equal(t, cfg.Categories, tables.Categories)
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalto-speech/fi-parliament-tools/internal/config"
	"github.com/aalto-speech/fi-parliament-tools/internal/stats"
)

func TestOpenRunStoreReturnsNilWithoutStorePath(t *testing.T) {
	cfg := config.Default()
	cfg.StorePath = ""

	st, runID := openRunStore(cfg, 3)
	assert.Nil(t, st)
	assert.Empty(t, runID)
}

func TestOpenRunStoreOpensConfiguredDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.StorePath = filepath.Join(t.TempDir(), "runs.db")

	st, runID := openRunStore(cfg, 3)
	require.NotNil(t, st)
	defer st.Close()
	assert.NotEmpty(t, runID)
}

func TestWriteStatsCSVWritesFile(t *testing.T) {
	agg := &stats.Aggregate{}
	agg.Add(stats.Row{Session: "001-2015", Statements: 2, Segments: 1})

	dir := t.TempDir()
	require.NoError(t, writeStatsCSV(dir, agg))

	data, err := os.ReadFile(filepath.Join(dir, "postprocess-statistics.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "001-2015")
}

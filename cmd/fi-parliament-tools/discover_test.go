package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestDiscoverSessionsFindsCompleteTriple(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "001-2015.ctm_edits.segmented")
	writeFile(t, dir, "001-2015.segments")
	writeFile(t, dir, "001-2015.text")

	sessions, err := discoverSessions(dir, "corpus", "out")
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, "001-2015", s.Name)
	assert.Equal(t, filepath.Join("corpus", "2015", "session-001-2015.json"), s.TranscriptPath)
	assert.Equal(t, filepath.Join(dir, "001-2015.ctm_edits.segmented"), s.CTMPath)
	assert.Equal(t, "out", s.OutputDir)
}

func TestDiscoverSessionsSkipsIncompleteTriple(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "001-2015.ctm_edits.segmented")
	// .segments and .text deliberately missing.

	sessions, err := discoverSessions(dir, "corpus", "out")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDiscoverSessionsRejectsMalformedSessionName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "not-a-session-name.ctm_edits.segmented")

	_, err := discoverSessions(dir, "corpus", "out")
	assert.Error(t, err)
}

func TestTranscriptPathUsesYearFromSessionName(t *testing.T) {
	path := transcriptPath("corpus", "042-2019")
	assert.Equal(t, filepath.Join("corpus", "2019", "session-042-2019.json"), path)
}

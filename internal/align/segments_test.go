package align

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSegmentsAbsoluteTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segments")
	content := "001-2015-00050000-00100000-0 001-2015 0.0 5.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	seg, err := LoadSegments(path)
	require.NoError(t, err)
	require.Equal(t, 1, seg.Len())
	assert.Equal(t, "001-2015", seg.RecordID)
	assert.InDelta(t, 500.0, seg.Start[0], 1e-9)
	assert.InDelta(t, 505.0, seg.End[0], 1e-9)
	assert.Empty(t, seg.NewUttID[0])
}

func TestLoadSegmentsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segments")
	require.NoError(t, os.WriteFile(path, []byte("too few fields\n"), 0o644))

	_, err := LoadSegments(path)
	require.Error(t, err)
	var alignErr *Error
	require.ErrorAs(t, err, &alignErr)
	assert.Equal(t, IOError, alignErr.Kind)
}

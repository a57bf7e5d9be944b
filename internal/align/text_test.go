package align

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "text")
	content := "001-2015-00050000-00100000-0 hello world\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	txt, err := LoadText(path)
	require.NoError(t, err)
	require.Equal(t, 1, txt.Len())
	assert.Equal(t, "001-2015-00050000-00100000-0", txt.UttID[0])
	assert.Equal(t, "hello world", txt.Words[0])
}

func TestLoadTextMissingSeparator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "text")
	require.NoError(t, os.WriteFile(path, []byte("nospaceuttid\n"), 0o644))

	_, err := LoadText(path)
	require.Error(t, err)
}

func TestApplyLabelsCopiesNewUttID(t *testing.T) {
	seg := &Segments{
		UttID:    []string{"a", "b"},
		NewUttID: []string{"00001-x", ""},
	}
	txt := &Text{
		UttID:    []string{"a", "b"},
		Words:    []string{"hi", "there"},
		NewUttID: []string{"", ""},
	}

	require.NoError(t, txt.ApplyLabels(seg))
	assert.Equal(t, "00001-x", txt.NewUttID[0])
	assert.Empty(t, txt.NewUttID[1])
}

func TestApplyLabelsLengthMismatch(t *testing.T) {
	seg := &Segments{UttID: []string{"a", "b"}, NewUttID: []string{"", ""}}
	txt := &Text{UttID: []string{"a"}, Words: []string{"hi"}, NewUttID: []string{""}}

	err := txt.ApplyLabels(seg)
	require.Error(t, err)
	var alignErr *Error
	require.ErrorAs(t, err, &alignErr)
	assert.Equal(t, InvariantViolation, alignErr.Kind)
}

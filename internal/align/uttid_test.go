package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSegmentIDBracketForm(t *testing.T) {
	sid, err := splitSegmentID("session-001-2015-00000000-00050000[12]")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, sid.Begin)
	assert.Equal(t, 500.0, sid.End)
	assert.Equal(t, 12, sid.Number)
}

func TestSplitSegmentIDTrailingHyphenForm(t *testing.T) {
	sid, err := splitSegmentID("session-001-2015-00050000-00100000-7")
	assert.NoError(t, err)
	assert.Equal(t, 500.0, sid.Begin)
	assert.Equal(t, 1000.0, sid.End)
	assert.Equal(t, 7, sid.Number)
}

func TestSplitSegmentIDMalformed(t *testing.T) {
	_, err := splitSegmentID("not-a-segment-id")
	assert.Error(t, err)
}

func TestFormUtteranceID(t *testing.T) {
	got := FormUtteranceID("001-2015", 42, 12.3, 45.6)
	assert.Equal(t, "00042-001-2015-00001230-00004560", got)
}

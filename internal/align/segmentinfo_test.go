package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSegmentInfoSingleMatch(t *testing.T) {
	ctm := &CTM{
		SegmentInfo: []string{"start-segment-0[start=0,end=3]", "", ""},
		WordID:      []int{0, 1, 2},
	}

	infos, err := parseSegmentInfo(ctm)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 0, infos[0].Row)
	assert.Equal(t, 0, infos[0].SegNum)
	assert.Equal(t, 0, infos[0].StartIdx)
	assert.Equal(t, 3, infos[0].EndIdx)
	assert.Equal(t, 0, infos[0].WordID)
}

func TestParseSegmentInfoMultipleMatchesOneRow(t *testing.T) {
	ctm := &CTM{
		SegmentInfo: []string{"start-segment-0[start=0,end=1]start-segment-1[start=1,end=2]"},
		WordID:      []int{0},
	}

	infos, err := parseSegmentInfo(ctm)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, 0, infos[0].SegNum)
	assert.Equal(t, 1, infos[1].SegNum)
}

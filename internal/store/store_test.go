package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aalto-speech/fi-parliament-tools/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStartRunRecordSessionFinishRun(t *testing.T) {
	st := openTestStore(t)

	runID, err := st.StartRun(4, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	row := stats.Row{
		Session:     "001-2015",
		Length:      90 * time.Second,
		Statements:  5,
		Segments:    3,
		SegmentsLen: 60 * time.Second,
	}
	require.NoError(t, st.RecordSession(runID, row, nil))
	require.NoError(t, st.RecordSession(runID, stats.Row{Session: "002-2015"}, errors.New("boom")))

	run, err := st.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, 2, run.DoneCount)
	assert.Equal(t, 1, run.FailedCount)
	assert.Equal(t, RunRunning, run.Status)

	rows, err := st.ListSessionStats(runID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "001-2015", rows[0].Session)
	assert.Equal(t, float64(90), rows[0].LengthSeconds)
	assert.Equal(t, "002-2015", rows[1].Session)
	assert.Equal(t, "boom", rows[1].Error)

	require.NoError(t, st.FinishRun(runID, nil))
	run, err = st.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, RunCompleted, run.Status)
	assert.NotNil(t, run.FinishedAt)
}

func TestFinishRunWithError(t *testing.T) {
	st := openTestStore(t)

	runID, err := st.StartRun(1, 1)
	require.NoError(t, err)

	require.NoError(t, st.FinishRun(runID, errors.New("driver exploded")))

	run, err := st.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, RunFailed, run.Status)
	assert.Equal(t, "driver exploded", run.Error)
}

func TestGetRunNotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.GetRun("does-not-exist")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListRunsOrdersMostRecentFirst(t *testing.T) {
	st := openTestStore(t)

	first, err := st.StartRun(1, 1)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := st.StartRun(1, 1)
	require.NoError(t, err)

	runs, err := st.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

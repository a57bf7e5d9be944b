// Package stats collects and reports the per-session counters produced by
// a postprocessing run: how much audio was covered, how many statements
// and segments were matched, dropped or failed, and writes a
// tab-separated summary alongside a human-readable log digest.
package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aalto-speech/fi-parliament-tools/internal/align"
	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

// Row is one session's statistics.
type Row struct {
	Session string

	Length           time.Duration
	Statements       int
	FailedStatements int
	Segments         int
	DroppedSegments  int
	FailedSegments   int
	MultipleSpeakers int
	Swedish          int
	SegmentsLen      time.Duration
	DroppedLen       time.Duration
}

// FromSessionStats builds a Row from an align.Stats, rounding sub-second
// durations to the nearest second (the statistics file reports whole
// seconds, matching the timedelta64[s] precision used upstream).
func FromSessionStats(session string, s align.Stats) Row {
	return Row{
		Session:          session,
		Length:           secondsToDuration(s.Length),
		Statements:       s.Statements,
		FailedStatements: s.FailedStatements,
		Segments:         s.Segments,
		DroppedSegments:  s.DroppedSegments,
		FailedSegments:   s.FailedSegments,
		MultipleSpeakers: s.MultipleSpeakers,
		Swedish:          s.Swedish,
		SegmentsLen:      secondsToDuration(s.SegmentsLen),
		DroppedLen:       secondsToDuration(s.DroppedLen),
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s)) * time.Second
}

// Aggregate accumulates Rows across a whole run.
type Aggregate struct {
	Rows []Row
}

// Add appends a session's Row.
func (a *Aggregate) Add(r Row) {
	a.Rows = append(a.Rows, r)
}

// total sums every numeric field across all rows.
func (a *Aggregate) total() Row {
	var t Row
	t.Session = "total"
	for _, r := range a.Rows {
		t.Length += r.Length
		t.Statements += r.Statements
		t.FailedStatements += r.FailedStatements
		t.Segments += r.Segments
		t.DroppedSegments += r.DroppedSegments
		t.FailedSegments += r.FailedSegments
		t.MultipleSpeakers += r.MultipleSpeakers
		t.Swedish += r.Swedish
		t.SegmentsLen += r.SegmentsLen
		t.DroppedLen += r.DroppedLen
	}
	return t
}

func pct(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return 100 * float64(num) / float64(denom)
}

func pctDuration(num, denom time.Duration) float64 {
	if denom == 0 {
		return 0
	}
	return 100 * float64(num) / float64(denom)
}

// WriteCSV writes one tab-separated row per session plus a trailing total
// row with derived percentage columns, mirroring the teacher's
// statistics file.
func (a *Aggregate) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	defer cw.Flush()

	header := []string{
		"session", "length", "statements", "failed_statements",
		"segments", "dropped_segments", "failed_segments", "multiple_spk", "swedish",
		"segments_len", "dropped_len", "segments_p", "failed_p", "dropped_p", "dropped_p_len",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	rows := append(append([]Row{}, a.Rows...), a.total())
	for _, r := range rows {
		record := []string{
			r.Session,
			r.Length.String(),
			fmt.Sprintf("%d", r.Statements),
			fmt.Sprintf("%d", r.FailedStatements),
			fmt.Sprintf("%d", r.Segments),
			fmt.Sprintf("%d", r.DroppedSegments),
			fmt.Sprintf("%d", r.FailedSegments),
			fmt.Sprintf("%d", r.MultipleSpeakers),
			fmt.Sprintf("%d", r.Swedish),
			r.SegmentsLen.String(),
			r.DroppedLen.String(),
			fmt.Sprintf("%.2f", pctDuration(r.SegmentsLen, r.Length)),
			fmt.Sprintf("%.2f", pct(r.FailedStatements, r.Statements)),
			fmt.Sprintf("%.2f", pct(r.DroppedSegments, r.Segments)),
			fmt.Sprintf("%.2f", pctDuration(r.DroppedLen, r.SegmentsLen)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// LogSummary logs the same digest the teacher's statistics report prints
// at the end of a run, supplementing the CSV with a read-at-a-glance
// version in the structured log.
func (a *Aggregate) LogSummary() {
	t := a.total()
	segmentsP := pctDuration(t.SegmentsLen, t.Length)
	droppedPLen := pctDuration(t.DroppedLen, t.SegmentsLen)
	failedP := pct(t.FailedStatements, t.Statements)
	droppedP := pct(t.DroppedSegments, t.Segments)

	logger.Info("speaker alignment statistics",
		"total_length", t.Length.String(),
		"segments_len", t.SegmentsLen.String(),
		"segments_len_pct", fmt.Sprintf("%.2f", segmentsP),
		"kept_len", (t.SegmentsLen - t.DroppedLen).String(),
		"dropped_len", t.DroppedLen.String(),
		"dropped_len_pct", fmt.Sprintf("%.2f", droppedPLen),
		"failed_statements", t.FailedStatements,
		"statements", t.Statements,
		"failed_statements_pct", fmt.Sprintf("%.2f", failedP),
		"failed_segments", t.FailedSegments,
		"multiple_speaker_segments", t.MultipleSpeakers,
		"swedish_segments", t.Swedish,
		"dropped_segments", t.DroppedSegments,
		"segments", t.Segments,
		"dropped_segments_pct", fmt.Sprintf("%.2f", droppedP),
	)
}

package align

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Segments is a struct-of-arrays view of a Kaldi segments file: one row per
// audio segment, giving its utterance id and start/end times relative to
// the parent recording.
type Segments struct {
	RecordID string

	UttID []string
	Start []float64
	End   []float64

	// NewUttID, MPID and Lang are populated by the labeler; NewUttID is
	// empty for segments that get dropped (no single speaker, or a
	// language other than "fi").
	NewUttID []string
	MPID     []int
	Lang     []string
}

// Len returns the number of rows.
func (s *Segments) Len() int { return len(s.UttID) }

// LoadSegments reads a Kaldi segments file ("uttid recordid start end" per
// line) and converts each segment's start/end to absolute session time
// using the segment id's embedded begin offset.
func LoadSegments(path string) (*Segments, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newErr(IOError, "align.LoadSegments", err)
	}
	defer f.Close()

	seg := &Segments{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, newErr(IOError, "align.LoadSegments",
				fmt.Errorf("%s:%d: expected 4 fields, got %d", path, lineNo, len(fields)))
		}
		uttid, recordid := fields[0], fields[1]
		start, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, newErr(IOError, "align.LoadSegments", fmt.Errorf("%s:%d: start: %w", path, lineNo, err))
		}
		end, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, newErr(IOError, "align.LoadSegments", fmt.Errorf("%s:%d: end: %w", path, lineNo, err))
		}
		sid, err := splitSegmentID(uttid)
		if err != nil {
			return nil, newErr(IOError, "align.LoadSegments", fmt.Errorf("%s:%d: %w", path, lineNo, err))
		}

		seg.RecordID = recordid
		seg.UttID = append(seg.UttID, uttid)
		seg.Start = append(seg.Start, start+sid.Begin)
		seg.End = append(seg.End, end+sid.Begin)
		seg.NewUttID = append(seg.NewUttID, "")
		seg.MPID = append(seg.MPID, 0)
		seg.Lang = append(seg.Lang, "")
	}
	if err := scanner.Err(); err != nil {
		return nil, newErr(IOError, "align.LoadSegments", err)
	}
	return seg, nil
}

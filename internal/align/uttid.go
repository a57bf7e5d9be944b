package align

import (
	"fmt"
	"strconv"
	"strings"
)

// segmentID holds the three values encoded in a Kaldi segment identifier:
// the centisecond-quantized begin/end of the segment's parent audio piece,
// and a running word/segment number.
type segmentID struct {
	Begin  float64
	End    float64
	Number int
}

// splitSegmentID parses a segment id of the form
// "session-NNN-YYYY-START-END[NUMBER]" or "session-NNN-YYYY-START-END-NUMBER"
// into its begin/end (seconds) and running number.
func splitSegmentID(id string) (segmentID, error) {
	if strings.Contains(id, "[") {
		idx := lastDashBefore(id, 2)
		if idx < 0 {
			return segmentID{}, fmt.Errorf("malformed segment id %q", id)
		}
		rest := id[idx+1:]
		parts := strings.SplitN(rest, "-", 2)
		if len(parts) != 2 {
			return segmentID{}, fmt.Errorf("malformed segment id %q", id)
		}
		begin, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return segmentID{}, fmt.Errorf("parse begin in %q: %w", id, err)
		}
		bracket := strings.SplitN(parts[1], "[", 2)
		if len(bracket) != 2 {
			return segmentID{}, fmt.Errorf("malformed segment id %q", id)
		}
		end, err := strconv.ParseFloat(bracket[0], 64)
		if err != nil {
			return segmentID{}, fmt.Errorf("parse end in %q: %w", id, err)
		}
		numStr := strings.TrimSuffix(bracket[1], "]")
		number, err := strconv.Atoi(numStr)
		if err != nil {
			return segmentID{}, fmt.Errorf("parse number in %q: %w", id, err)
		}
		return segmentID{Begin: begin / 100.0, End: end / 100.0, Number: number}, nil
	}

	fields := strings.Split(id, "-")
	if len(fields) < 4 {
		return segmentID{}, fmt.Errorf("malformed segment id %q", id)
	}
	tail := fields[len(fields)-3:]
	begin, err := strconv.ParseFloat(tail[0], 64)
	if err != nil {
		return segmentID{}, fmt.Errorf("parse begin in %q: %w", id, err)
	}
	end, err := strconv.ParseFloat(tail[1], 64)
	if err != nil {
		return segmentID{}, fmt.Errorf("parse end in %q: %w", id, err)
	}
	number, err := strconv.Atoi(tail[2])
	if err != nil {
		return segmentID{}, fmt.Errorf("parse number in %q: %w", id, err)
	}
	return segmentID{Begin: begin / 100.0, End: end / 100.0, Number: number}, nil
}

// lastDashBefore returns the index of the n-th dash from the end of s,
// i.e. the split point rsplit("-", n) would cut at; -1 if there are fewer
// than n dashes.
func lastDashBefore(s string, n int) int {
	count := 0
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '-' {
			count++
			if count == n {
				return i
			}
		}
	}
	return -1
}

// FormUtteranceID builds the new utterance id for a labeled segment, using
// centisecond-quantized absolute start/end. Callers must only invoke this
// when mpid is a valid single speaker (mpid > 0); segments with no speaker
// or multiple speakers are dropped instead, per the kept/dropped split.
func FormUtteranceID(session string, mpid int, start, end float64) string {
	s := int(start * 100)
	e := int(end * 100)
	return fmt.Sprintf("%05d-%s-%08d-%08d", mpid, session, s, e)
}

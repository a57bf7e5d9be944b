package align

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CTM is a struct-of-arrays view of a Kaldi ctm_edits.segmented file: one
// slice per column, indexed in parallel. Columns stay contiguous rather
// than boxed into per-row structs so the sliding-window matcher and the
// segment labeler can slice and scan them directly.
type CTM struct {
	Session string

	WordStart    []float64
	WordDuration []float64
	ASR          []string
	Transcript   []string
	Edit         []string
	SegmentInfo  []string

	// SegStart/SegEnd/WordID are derived from each row's segment id
	// (the first space-separated field of the ctm_edits.segmented line).
	SegStart []float64
	SegEnd   []float64
	WordID   []int

	// SessionStart is SegStart + WordStart, the word's absolute position
	// in session time.
	SessionStart []float64

	// Speaker/MPID/Lang are written by the matcher as statements are
	// assigned; they start "unknown"/0/"".
	Speaker []string
	MPID    []int
	Lang    []string
}

// Len returns the number of rows.
func (c *CTM) Len() int { return len(c.Transcript) }

// LoadCTM reads a ctm_edits.segmented file and checks the segment
// continuity invariant.
func LoadCTM(path, session string) (*CTM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newErr(IOError, "align.LoadCTM", err)
	}
	defer f.Close()

	ctm := &CTM{Session: session}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 8 {
			return nil, newErr(IOError, "align.LoadCTM",
				fmt.Errorf("%s:%d: expected at least 8 fields, got %d", path, lineNo, len(fields)))
		}
		segID := fields[0]
		// fields[1] is the channel, unused once parsed.
		wordStart, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, newErr(IOError, "align.LoadCTM", fmt.Errorf("%s:%d: word_start: %w", path, lineNo, err))
		}
		wordDuration, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, newErr(IOError, "align.LoadCTM", fmt.Errorf("%s:%d: word_duration: %w", path, lineNo, err))
		}
		asr := fields[4]
		// fields[5] is the confidence, unused.
		transcript := fields[6]
		edit := fields[7]
		segmentInfo := ""
		if len(fields) > 8 {
			segmentInfo = strings.Join(fields[8:], " ")
		}

		sid, err := splitSegmentID(segID)
		if err != nil {
			return nil, newErr(IOError, "align.LoadCTM", fmt.Errorf("%s:%d: %w", path, lineNo, err))
		}

		ctm.WordStart = append(ctm.WordStart, wordStart)
		ctm.WordDuration = append(ctm.WordDuration, wordDuration)
		ctm.ASR = append(ctm.ASR, asr)
		ctm.Transcript = append(ctm.Transcript, transcript)
		ctm.Edit = append(ctm.Edit, edit)
		ctm.SegmentInfo = append(ctm.SegmentInfo, segmentInfo)
		ctm.SegStart = append(ctm.SegStart, sid.Begin)
		ctm.SegEnd = append(ctm.SegEnd, sid.End)
		ctm.WordID = append(ctm.WordID, sid.Number)
		ctm.SessionStart = append(ctm.SessionStart, sid.Begin+wordStart)
		ctm.Speaker = append(ctm.Speaker, "unknown")
		ctm.MPID = append(ctm.MPID, 0)
		ctm.Lang = append(ctm.Lang, "")
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, newErr(IOError, "align.LoadCTM", err)
	}

	if err := ctm.checkContinuity(); err != nil {
		return nil, err
	}
	return ctm, nil
}

// checkContinuity verifies the segmentation invariant: the first row starts
// at session time 0, and every jump in seg_start between consecutive rows
// is either 0 (same segment) or one fixed length (adjacent segment) —
// never a partial jump that would indicate a missing segment.
func (c *CTM) checkContinuity() error {
	if c.Len() == 0 {
		return newErr(InvariantViolation, "align.CTM.checkContinuity", fmt.Errorf("empty ctm"))
	}
	if c.SegStart[0] != 0.0 {
		return newErr(InvariantViolation, "align.CTM.checkContinuity", fmt.Errorf("first segment is missing"))
	}
	seen := map[float64]bool{0.0: true}
	prev := 0.0
	for i := 0; i < c.Len(); i++ {
		diff := c.SegStart[i] - prev
		seen[diff] = true
		prev = c.SegStart[i]
	}
	if len(seen) > 2 || !seen[0.0] {
		return newErr(InvariantViolation, "align.CTM.checkContinuity", fmt.Errorf("there is a missing segment"))
	}
	return nil
}

// Length returns the session's total covered duration: the last row's
// absolute start time plus its duration.
func (c *CTM) Length() float64 {
	if c.Len() == 0 {
		return 0
	}
	last := c.Len() - 1
	return c.SessionStart[last] + c.WordDuration[last]
}

package align

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Text is a struct-of-arrays view of a Kaldi text file: one row per
// utterance, giving its id and the transcribed words Kaldi recognized.
type Text struct {
	UttID []string
	Words []string

	// NewUttID is copied over from Segments once labeling is done, row
	// for row; it stays empty for dropped utterances.
	NewUttID []string
}

// Len returns the number of rows.
func (t *Text) Len() int { return len(t.UttID) }

// LoadText reads a Kaldi text file ("uttid word1 word2 ..." per line).
func LoadText(path string) (*Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newErr(IOError, "align.LoadText", err)
	}
	defer f.Close()

	txt := &Text{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		idx := strings.IndexByte(line, ' ')
		if idx < 0 {
			return nil, newErr(IOError, "align.LoadText", fmt.Errorf("%s:%d: missing uttid separator", path, lineNo))
		}
		txt.UttID = append(txt.UttID, line[:idx])
		txt.Words = append(txt.Words, strings.TrimLeft(line[idx+1:], " "))
		txt.NewUttID = append(txt.NewUttID, "")
	}
	if err := scanner.Err(); err != nil {
		return nil, newErr(IOError, "align.LoadText", err)
	}
	if txt.Len() != 0 && len(txt.NewUttID) != txt.Len() {
		return nil, newErr(InvariantViolation, "align.LoadText", fmt.Errorf("internal column length mismatch"))
	}
	return txt, nil
}

// ApplyLabels copies the segments table's new utterance ids onto the text
// table, row for row. The two tables must be the same length and in the
// same order, matching how Kaldi emits segments and text for one session.
func (t *Text) ApplyLabels(seg *Segments) error {
	if t.Len() != seg.Len() {
		return newErr(InvariantViolation, "align.Text.ApplyLabels",
			fmt.Errorf("text has %d rows, segments has %d", t.Len(), seg.Len()))
	}
	copy(t.NewUttID, seg.NewUttID)
	return nil
}

package align

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteOutputs splits seg/txt into kept (single Finnish-speaking speaker) and
// dropped (no speaker, multiple speakers, or non-Finnish) rows and writes
// four files: "<session>.segments", "<session>.text" for the kept rows, and
// "<session>.segments.dropped", "<session>.text.dropped" for diagnostics,
// the dropped rows carrying appended "mpid lang" columns. Each file is
// written to a temporary path in the same directory and renamed into place,
// so a reader never observes a partially written file.
func WriteOutputs(dir, session string, seg *Segments, txt *Text) error {
	if seg.Len() != txt.Len() {
		return newErr(InvariantViolation, "align.WriteOutputs",
			fmt.Errorf("segments has %d rows, text has %d", seg.Len(), txt.Len()))
	}

	var keptSeg, droppedSeg, keptTxt, droppedTxt strings.Builder
	for i := 0; i < seg.Len(); i++ {
		kept := seg.NewUttID[i] != "" && seg.Lang[i] == "fi"
		if kept {
			keptSeg.WriteString(formatSegmentLine(seg, i, false))
			keptTxt.WriteString(formatTextLine(txt, seg, i, false))
		} else {
			droppedSeg.WriteString(formatSegmentLine(seg, i, true))
			droppedTxt.WriteString(formatTextLine(txt, seg, i, true))
		}
	}

	writes := []struct {
		name    string
		content string
	}{
		{session + ".segments", keptSeg.String()},
		{session + ".text", keptTxt.String()},
		{session + ".segments.dropped", droppedSeg.String()},
		{session + ".text.dropped", droppedTxt.String()},
	}
	for _, w := range writes {
		if err := writeAtomic(filepath.Join(dir, w.name), w.content); err != nil {
			return newErr(IOError, "align.WriteOutputs", err)
		}
	}
	return nil
}

// formatSegmentLine renders one segments-file row. Dropped rows append the
// mpid/lang columns the diagnostics stream carries beyond the input format.
func formatSegmentLine(seg *Segments, i int, dropped bool) string {
	uttid := seg.NewUttID[i]
	if uttid == "" {
		uttid = seg.UttID[i]
	}
	line := fmt.Sprintf("%s %s %s %s",
		uttid, seg.RecordID,
		strconv.FormatFloat(seg.Start[i], 'f', 2, 64),
		strconv.FormatFloat(seg.End[i], 'f', 2, 64))
	if dropped {
		line += fmt.Sprintf(" %d %s", seg.MPID[i], seg.Lang[i])
	}
	return line + "\n"
}

// formatTextLine renders one text-file row, taking the speaker/language
// labels from the parallel Segments row since Text itself carries none.
// Dropped rows append the mpid/lang columns the diagnostics stream carries
// beyond the input format.
func formatTextLine(txt *Text, seg *Segments, i int, dropped bool) string {
	uttid := seg.NewUttID[i]
	if uttid == "" {
		uttid = txt.UttID[i]
	}
	line := fmt.Sprintf("%s %s", uttid, txt.Words[i])
	if dropped {
		line += fmt.Sprintf(" %d %s", seg.MPID[i], seg.Lang[i])
	}
	return line + "\n"
}

func writeAtomic(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

package align

import (
	"fmt"
	"sort"
	"strings"
)

// Stats accumulates the per-session counters a caller reports alongside
// the labeled output.
type Stats struct {
	// Length is the session's total covered audio duration, from the CTM.
	Length           float64
	Statements       int
	FailedStatements int
	Segments         int
	DroppedSegments  int
	FailedSegments   int
	MultipleSpeakers int
	Swedish          int
	SegmentsLen      float64
	DroppedLen       float64
}

// LabelSegments assigns a speaker mpid, a language and a new utterance id
// to every row of seg, using the segment boundaries recorded in the CTM's
// segment_info column. It mutates seg in place and returns the counters
// the driver folds into the session's Stats. A row only gets a non-empty
// NewUttID when mpid>0 and lang=="fi"; everything else (no speaker, mixed
// speakers, or non-Finnish) is dropped.
func LabelSegments(ctm *CTM, seg *Segments, session string) (multipleSpeakers, failedSegments, swedish int, err error) {
	infos, err := parseSegmentInfo(ctm)
	if err != nil {
		return 0, 0, 0, err
	}
	if len(infos) != seg.Len() {
		return 0, 0, 0, newErr(InvariantViolation, "align.LabelSegments",
			fmt.Errorf("%d segment_info matches but %d segments", len(infos), seg.Len()))
	}

	sort.SliceStable(infos, func(i, j int) bool { return infos[i].Row < infos[j].Row })

	keepMask := make([]bool, ctm.Len())
	for i, e := range ctm.Edit {
		keepMask[i] = e != "sil" && e != "fix"
	}

	for idx, info := range infos {
		shift := info.StartIdx - info.WordID
		length := info.EndIdx - info.StartIdx
		start := info.Row + shift

		mpid := segmentSpeaker(ctm, keepMask, start, length)
		lang := segmentLanguage(ctm, keepMask, start, length)
		seg.MPID[idx] = mpid
		seg.Lang[idx] = lang
		switch {
		case mpid == -1:
			multipleSpeakers++
		case mpid == 0:
			failedSegments++
		}
		if strings.Contains(lang, "sv") {
			swedish++
		}
		if mpid > 0 && lang == "fi" {
			seg.NewUttID[idx] = FormUtteranceID(session, mpid, seg.Start[idx], seg.End[idx])
		} else {
			seg.NewUttID[idx] = ""
		}
	}
	return multipleSpeakers, failedSegments, swedish, nil
}

// segmentSpeaker determines a segment's single speaker mpid, or -1 if the
// segment genuinely mixes more than one speaker. A segment containing
// exactly one real speaker plus at most one unassigned (mpid 0) row is
// still treated as single-speaker, since occasional alignment gaps are
// expected even inside a correctly labeled segment; two or more mpid 0
// rows count as a second speaker.
func segmentSpeaker(ctm *CTM, keep []bool, start, length int) int {
	values := filteredInts(ctm.MPID, keep, start, length)
	if len(values) == 0 {
		return 0
	}
	distinct := distinctSortedInts(values)
	if len(distinct) == 2 && distinct[0] == 0 {
		zeros := 0
		for _, v := range values {
			if v == 0 {
				zeros++
			}
		}
		if zeros < 2 {
			return distinct[1]
		}
	}
	if len(distinct) > 1 {
		return -1
	}
	return distinct[0]
}

// segmentLanguage determines a segment's language label: "fi+sv" if both
// Finnish and Swedish speech appear in it, "sv" if only Swedish, else "fi".
func segmentLanguage(ctm *CTM, keep []bool, start, length int) string {
	values := filteredStrings(ctm.Lang, keep, start, length)
	hasFi, hasSv := false, false
	for _, v := range values {
		if strings.Contains(v, "fi") {
			hasFi = true
		}
		if strings.Contains(v, "sv") {
			hasSv = true
		}
	}
	switch {
	case hasFi && hasSv:
		return "fi+sv"
	case hasSv:
		return "sv"
	default:
		return "fi"
	}
}

func filteredInts(values []int, keep []bool, start, length int) []int {
	var out []int
	end := start + length
	for i := start; i < end && i < len(values); i++ {
		if i >= 0 && keep[i] {
			out = append(out, values[i])
		}
	}
	return out
}

func filteredStrings(values []string, keep []bool, start, length int) []string {
	var out []string
	end := start + length
	for i := start; i < end && i < len(values); i++ {
		if i >= 0 && keep[i] {
			out = append(out, values[i])
		}
	}
	return out
}

func distinctSortedInts(values []int) []int {
	seen := map[int]bool{}
	for _, v := range values {
		seen[v] = true
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

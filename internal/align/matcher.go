package align

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	defaultWindowSize  = 10000
	defaultWindowStep  = 7500
	defaultMatchLimit  = 30
	defaultMinMatch    = 5
	endIndexSearchPad  = 100
	corRatioAcceptance = 0.5
)

// Matcher locates statement text inside a CTM table's transcript column and
// writes speaker/language labels onto the matched row range. One Matcher is
// built per session and reused across all of that session's statements,
// since the masked transcript it precomputes does not change as rows are
// labeled (only the Speaker/MPID/Lang columns are written).
type Matcher struct {
	ctm *CTM

	// maskedRows[i] is the CTM row index of the i-th non-<eps>/<UNK>
	// token; maskedWords mirrors it with the token text.
	maskedRows  []int
	maskedWords []string

	windowSize int
	windowStep int
	matchLimit int
}

// NewMatcher builds a Matcher over ctm. windowSize/windowStep of 0 fall
// back to the defaults (10000/7500).
func NewMatcher(ctm *CTM, windowSize, windowStep int) *Matcher {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	if windowStep <= 0 {
		windowStep = defaultWindowStep
	}
	m := &Matcher{ctm: ctm, windowSize: windowSize, windowStep: windowStep, matchLimit: defaultMatchLimit}
	for i, w := range ctm.Transcript {
		if w == "<eps>" || w == "<UNK>" {
			continue
		}
		m.maskedRows = append(m.maskedRows, i)
		m.maskedWords = append(m.maskedWords, w)
	}
	return m
}

// AssignSpeakerWords locates a statement's words in the CTM and writes
// speaker/mpid/lang onto the matched row range. Swedish statements skip the
// boundary tightening in adjustIndices, since their edit tags are
// dominated by "fix" rather than "cor" (the ASR system isn't trained on
// Swedish).
func (m *Matcher) AssignSpeakerWords(words []string, speaker string, mpid int, lang string) error {
	startRow, endRow, err := m.findStatement(words, lang)
	if err != nil {
		return err
	}
	if !strings.Contains(lang, "sv") {
		startRow, endRow, err = m.adjustIndices(startRow, endRow)
		if err != nil {
			return err
		}
	}
	for row := startRow; row <= endRow && row < m.ctm.Len(); row++ {
		m.ctm.Speaker[row] = speaker
		m.ctm.MPID[row] = mpid
		m.ctm.Lang[row] = lang
	}
	return nil
}

// findStatement finds the start and end CTM row indices for words, sliding
// a window over the masked transcript and searching each window with a
// sequence-matching diff. lang bypasses the correctness-ratio acceptance
// test for Swedish content.
func (m *Matcher) findStatement(words []string, lang string) (startRow, endRow int, err error) {
	n := len(m.maskedWords)
	if n == 0 {
		return 0, 0, newErr(AlignmentNotFound, "align.Matcher.findStatement", fmt.Errorf("ctm has no aligned words"))
	}
	wordsMatched := len(words)
	if wordsMatched > m.matchLimit {
		wordsMatched = m.matchLimit
	}
	minMatch := wordsMatched
	if minMatch > defaultMinMatch {
		minMatch = defaultMinMatch
	}
	prefix := words[:wordsMatched]
	isSwedish := strings.Contains(lang, "sv")

	for i, base := range windowStarts(n, m.windowSize, m.windowStep) {
		window := sliceWindow(m.maskedWords, base, m.windowSize)
		diff := difflib.NewMatcher(window, prefix)
		start := 0
		for start < m.windowStep {
			match := bestMatch(diff.GetMatchingBlocks(), minMatch)
			start += match.A
			if match.Size <= 0 {
				break
			}
			s := start + i*m.windowStep
			if s >= n {
				break
			}
			end := s + match.Size
			if end > n {
				end = n
			}
			corRatio := m.corRatio(s, end)
			if isSwedish || corRatio > corRatioAcceptance {
				endRow, err := m.findEndIndex(s, words)
				if err != nil {
					return 0, 0, err
				}
				return m.maskedRows[s], endRow, nil
			}
			start += wordsMatched
			if start >= len(window) {
				break
			}
			diff.SetSeq1(window[start:])
		}
	}
	return 0, 0, newErr(AlignmentNotFound, "align.Matcher.findStatement", fmt.Errorf("alignment not found"))
}

// corRatio is the fraction of rows tagged "cor" among masked positions
// [start, end), matching the acceptance test used before committing to a
// candidate match.
func (m *Matcher) corRatio(start, end int) float64 {
	if end <= start {
		return 0
	}
	cor := 0
	for _, row := range m.maskedRows[start:end] {
		if m.ctm.Edit[row] == "cor" {
			cor++
		}
	}
	return float64(cor) / float64(end-start)
}

// findEndIndex searches forward from masked position s for the end of
// words and returns the CTM row of the masked position just past the last
// matched word.
func (m *Matcher) findEndIndex(s int, words []string) (int, error) {
	tailWords := m.maskedWords[s:]
	tailRows := m.maskedRows[s:]
	if len(tailWords) == 0 {
		return 0, newErr(EndNotFound, "align.Matcher.findEndIndex", fmt.Errorf("no words remain after start"))
	}
	searchEnd := len(words) + endIndexSearchPad
	if searchEnd > len(tailWords)-1 {
		searchEnd = len(tailWords) - 1
	}
	if searchEnd < 0 {
		searchEnd = 0
	}

	diff := difflib.NewMatcher(tailWords[:searchEnd], words)
	ops := diff.GetOpCodes()
	if len(ops) > 0 && ops[len(ops)-1].Tag == 'e' {
		i2 := ops[len(ops)-1].I2
		return tailRows[i2], nil
	}
	matches := diff.GetMatchingBlocks()
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Size > 1 {
			endIdx := matches[i].A + matches[i].Size
			return tailRows[endIdx], nil
		}
	}
	return 0, newErr(EndNotFound, "align.Matcher.findEndIndex", fmt.Errorf("statement end index not found"))
}

// adjustIndices tightens [startRow, endRow) to the first and last "cor"
// rows inside it, discounting leading/trailing rows where the Kaldi edit
// hypothesis diverges from the transcript.
func (m *Matcher) adjustIndices(startRow, endRow int) (int, int, error) {
	if startRow == endRow {
		return 0, 0, newErr(ZeroLength, "align.Matcher.adjustIndices", fmt.Errorf("found segment is of length 0"))
	}
	lo, hi := startRow, endRow
	if lo > hi {
		lo, hi = hi, lo
	}
	slice := m.ctm.Edit[lo:hi]
	cors := make([]bool, len(slice))
	for i, e := range slice {
		cors[i] = e == "cor"
	}
	firstCor := argmaxBool(cors)
	lastCor := argmaxBoolReversed(cors)
	if lastCor > 0 {
		lastCor++
	}
	return startRow + firstCor, endRow - lastCor, nil
}

// argmaxBool returns the index of the first true value in bs, or 0 if none
// is true (mirroring numpy's argmax on an all-False array).
func argmaxBool(bs []bool) int {
	for i, b := range bs {
		if b {
			return i
		}
	}
	return 0
}

// argmaxBoolReversed returns the index, counting from the end, of the first
// true value scanning backward, or 0 if none is true.
func argmaxBoolReversed(bs []bool) int {
	for i := len(bs) - 1; i >= 0; i-- {
		if bs[i] {
			return len(bs) - 1 - i
		}
	}
	return 0
}

// bestMatch returns the first matching block with size >= minSize, or a
// zero-value Match if none qualifies.
func bestMatch(blocks []difflib.Match, minSize int) difflib.Match {
	for _, b := range blocks {
		if b.Size >= minSize {
			return b
		}
	}
	return difflib.Match{}
}

// windowStarts returns the masked-position offsets of each sliding window,
// replicating a deque-based generator that stops as soon as advancing by
// one more step would require a token past the end of the sequence.
func windowStarts(n, size, step int) []int {
	if n == 0 {
		return nil
	}
	starts := []int{0}
	pos := 0
	for {
		nextNeeded := pos + size
		if nextNeeded >= n {
			break
		}
		pos += step
		starts = append(starts, pos)
	}
	return starts
}

// sliceWindow returns words[base:base+size], right-padded with "" if the
// underlying slice is shorter than size.
func sliceWindow(words []string, base, size int) []string {
	end := base + size
	if end > len(words) {
		end = len(words)
	}
	window := make([]string, size)
	if base < len(words) {
		copy(window, words[base:end])
	}
	return window
}

// Package driver runs the postprocessing pipeline across one or more
// sessions: load the transcript and alignment files, match statements onto
// the CTM, label segments, write the filtered output, and report
// statistics. It exposes a bounded worker pool for processing many
// sessions concurrently.
package driver

import (
	"errors"
	"os"
	"strings"

	"github.com/aalto-speech/fi-parliament-tools/internal/align"
	"github.com/aalto-speech/fi-parliament-tools/internal/normalize"
	"github.com/aalto-speech/fi-parliament-tools/internal/transcript"
	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

// Session names the input files one postprocessing run of the pipeline
// consumes, plus the directory kept/dropped output is written to.
type Session struct {
	Name           string // e.g. "001-2015"
	TranscriptPath string
	CTMPath        string
	SegmentsPath   string
	TextPath       string
	OutputDir      string
}

// Options tunes the matcher and supplies the normalizer collaborators.
type Options struct {
	Normalizer normalize.Normalizer
	Identifier normalize.LanguageIdentifier
	WindowSize int
	WindowStep int
}

// ProcessSession runs the full pipeline for one session and returns its
// statistics. Per-statement alignment failures are caught and counted;
// only invariant violations and I/O errors abort the session.
func ProcessSession(s Session, opts Options) (align.Stats, error) {
	var stat align.Stats

	t, err := loadTranscript(s.TranscriptPath)
	if err != nil {
		return stat, err
	}

	ctm, err := align.LoadCTM(s.CTMPath, s.Name)
	if err != nil {
		return stat, err
	}
	seg, err := align.LoadSegments(s.SegmentsPath)
	if err != nil {
		return stat, err
	}
	txt, err := align.LoadText(s.TextPath)
	if err != nil {
		return stat, err
	}

	stat.Length = ctm.Length()
	matcher := align.NewMatcher(ctm, opts.WindowSize, opts.WindowStep)

	for _, sub := range t.Subsections {
		for _, statement := range sub.Statements {
			for _, piece := range transcript.Pieces(statement) {
				words, skip, err := normalizePiece(piece, opts)
				if skip {
					continue
				}
				stat.Statements++
				if err != nil {
					stat.FailedStatements++
					logger.Warn("statement normalization failed", "session", s.Name, "error", err)
					continue
				}
				speaker := piece.Firstname + " " + piece.Lastname
				lang := piece.Language
				if lang == "" && opts.Identifier != nil {
					if id, idErr := opts.Identifier.Identify(piece.Text); idErr == nil {
						lang = id
					}
				}
				if mErr := matcher.AssignSpeakerWords(words, speaker, piece.MPID, lang); mErr != nil {
					var alignErr *align.Error
					if errors.As(mErr, &alignErr) && !alignErr.Fatal() {
						stat.FailedStatements++
						logger.Warn("statement alignment failed", "session", s.Name, "error", mErr)
						continue
					}
					return stat, mErr
				}
			}
		}
	}

	multiSpk, failedSeg, swedish, err := align.LabelSegments(ctm, seg, s.Name)
	if err != nil {
		return stat, err
	}
	if err := txt.ApplyLabels(seg); err != nil {
		return stat, err
	}
	stat.MultipleSpeakers = multiSpk
	stat.FailedSegments = failedSeg
	stat.Swedish = swedish
	stat.Segments = seg.Len()

	for i := 0; i < seg.Len(); i++ {
		length := seg.End[i] - seg.Start[i]
		stat.SegmentsLen += length
		kept := seg.NewUttID[i] != "" && seg.Lang[i] == "fi"
		if !kept {
			stat.DroppedSegments++
			stat.DroppedLen += length
		}
	}

	if err := align.WriteOutputs(s.OutputDir, s.Name, seg, txt); err != nil {
		return stat, err
	}
	return stat, nil
}

// normalizePiece applies the pluggable Normalizer to a piece's text and
// splits it into words, skipping pieces whose text is a single word or
// less (too short to search for reliably), matching the upstream filter
// `len(txt.strip().split(" ")) > 1`.
func normalizePiece(p transcript.Piece, opts Options) (words []string, skip bool, err error) {
	if len(strings.Fields(p.Text)) <= 1 {
		return nil, true, nil
	}
	text := p.Text
	if opts.Normalizer != nil {
		normalized, nErr := opts.Normalizer.Normalize(p.Text)
		if nErr != nil {
			return nil, false, align.WrapNormalizationFailed(nErr)
		}
		text = normalized
	}
	return strings.Fields(text), false, nil
}

func loadTranscript(path string) (*transcript.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, align.WrapIOError("driver.loadTranscript", err)
	}
	t, err := transcript.Decode(data)
	if err != nil {
		return nil, align.WrapIOError("driver.loadTranscript", err)
	}
	return t, nil
}

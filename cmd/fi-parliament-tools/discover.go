package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalto-speech/fi-parliament-tools/internal/driver"
	"github.com/aalto-speech/fi-parliament-tools/internal/watch"
)

var sessionNamePattern = regexp.MustCompile(`^(\d+)-(\d+)$`)

// discoverSessions scans inputDir for complete (ctm, segments, text)
// triples and pairs each with its original transcript JSON, found under
// corpusDir/<year>/session-<name>.json.
func discoverSessions(inputDir, corpusDir, outputDir string) ([]driver.Session, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir %s: %w", inputDir, err)
	}

	names := map[string]bool{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), watch.SuffixCTM) {
			names[strings.TrimSuffix(e.Name(), watch.SuffixCTM)] = true
		}
	}

	var sessions []driver.Session
	for name := range names {
		if sessionNamePattern.FindStringSubmatch(name) == nil {
			return nil, fmt.Errorf("session filename %q does not match <num>-<year>", name)
		}

		s := driver.Session{
			Name:           name,
			TranscriptPath: transcriptPath(corpusDir, name),
			CTMPath:        filepath.Join(inputDir, name+watch.SuffixCTM),
			SegmentsPath:   filepath.Join(inputDir, name+watch.SuffixSegments),
			TextPath:       filepath.Join(inputDir, name+watch.SuffixText),
			OutputDir:      outputDir,
		}
		if !exists(s.SegmentsPath) || !exists(s.TextPath) {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

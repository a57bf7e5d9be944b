// Package watch monitors an incoming alignment directory for a session's
// three required files (CTM edits, segments, text) and enqueues the
// session once all three are present, so a long-running process can drive
// the postprocessing pipeline without a separate cron/cli invocation per
// session.
package watch

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

// Session is a detected, complete set of input files for one session name.
type Session struct {
	Name         string
	CTMPath      string
	SegmentsPath string
	TextPath     string
}

// File suffixes a complete session's three input files carry. Exported so
// cmd/fi-parliament-tools can discover already-complete sessions the same
// way the watcher recognizes newly-completed ones.
const (
	SuffixCTM      = ".ctm_edits.segmented"
	SuffixSegments = ".segments"
	SuffixText     = ".text"
)

// Watcher watches a directory and calls OnSession once per session whose
// full (ctm, segments, text) triple has appeared. It tolerates the three
// files arriving in any order and arriving one at a time.
type Watcher struct {
	dir      string
	onSession func(Session)

	mu   sync.Mutex
	seen map[string]*partial
}

type partial struct {
	ctm, segments, text string
}

// New builds a Watcher over dir that calls onSession as each session's
// triple completes.
func New(dir string, onSession func(Session)) *Watcher {
	return &Watcher{dir: dir, onSession: onSession, seen: map[string]*partial{}}
}

// Run blocks, watching dir until stop is closed or an unrecoverable
// watcher error occurs.
func (w *Watcher) Run(stop <-chan struct{}) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	logger.Info("watching incoming directory", "dir", w.dir)

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.observe(event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// observe records path against its session and fires onSession once all
// three files are known.
func (w *Watcher) observe(path string) {
	name := filepath.Base(path)
	session, kind := classify(name)
	if session == "" {
		return
	}

	w.mu.Lock()
	p, ok := w.seen[session]
	if !ok {
		p = &partial{}
		w.seen[session] = p
	}
	switch kind {
	case SuffixCTM:
		p.ctm = path
	case SuffixSegments:
		p.segments = path
	case SuffixText:
		p.text = path
	}
	complete := p.ctm != "" && p.segments != "" && p.text != ""
	if complete {
		delete(w.seen, session)
	}
	w.mu.Unlock()

	if complete {
		logger.Info("session ready", "session", session)
		w.onSession(Session{Name: session, CTMPath: p.ctm, SegmentsPath: p.segments, TextPath: p.text})
	}
}

// classify reports the session name and file kind a watched filename
// belongs to, or ("", "") if it matches none of the three suffixes.
func classify(name string) (session, kind string) {
	switch {
	case strings.HasSuffix(name, SuffixCTM):
		return strings.TrimSuffix(name, SuffixCTM), SuffixCTM
	case strings.HasSuffix(name, SuffixSegments):
		return strings.TrimSuffix(name, SuffixSegments), SuffixSegments
	case strings.HasSuffix(name, SuffixText):
		return strings.TrimSuffix(name, SuffixText), SuffixText
	default:
		return "", ""
	}
}

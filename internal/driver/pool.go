package driver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aalto-speech/fi-parliament-tools/internal/stats"
	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

// Result pairs a session with the outcome of processing it.
type Result struct {
	Session Session
	Row     stats.Row
	Err     error
}

// ProgressFunc is called once per session as it completes, letting a CLI
// wrapper render a progress bar without this package knowing about any
// particular rendering library.
type ProgressFunc func(done, total int, s Session, err error)

// Run processes sessions with up to workers running concurrently. Workers
// only report results over resultCh; the goroutine that called Run owns
// the returned Aggregate, so no statistics state is shared between
// goroutines. Run returns once every session has been attempted,
// regardless of individual failures, unless ctx is cancelled first.
func Run(ctx context.Context, sessions []Session, workers int, opts Options, progress ProgressFunc) (*stats.Aggregate, error) {
	if workers <= 0 {
		workers = 1
	}

	resultCh := make(chan Result)
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)

	go func() {
		// Close resultCh only after every started worker has returned, so
		// no worker ever sends on a closed channel.
		defer func() {
			_ = g.Wait()
			close(resultCh)
		}()
		for _, s := range sessions {
			s := s
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return
			}
			g.Go(func() error {
				defer func() { <-sem }()
				row, err := processOne(s, opts)
				select {
				case resultCh <- Result{Session: s, Row: row, Err: err}:
				case <-gctx.Done():
				}
				return nil
			})
		}
	}()

	agg := &stats.Aggregate{}
	done := 0
	total := len(sessions)
	for r := range resultCh {
		done++
		if r.Err != nil {
			logger.Error("session failed", "session", r.Session.Name, "error", r.Err)
		} else {
			agg.Add(r.Row)
		}
		if progress != nil {
			progress(done, total, r.Session, r.Err)
		}
	}

	if err := g.Wait(); err != nil {
		return agg, err
	}
	return agg, nil
}

func processOne(s Session, opts Options) (stats.Row, error) {
	alignStats, err := ProcessSession(s, opts)
	if err != nil {
		return stats.Row{}, err
	}
	return stats.FromSessionStats(s.Name, alignStats), nil
}

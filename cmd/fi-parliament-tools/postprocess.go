package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalto-speech/fi-parliament-tools/internal/config"
	"github.com/aalto-speech/fi-parliament-tools/internal/driver"
	"github.com/aalto-speech/fi-parliament-tools/internal/normalize"
	"github.com/aalto-speech/fi-parliament-tools/internal/stats"
	"github.com/aalto-speech/fi-parliament-tools/internal/store"
	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

func postprocessCmd() *cobra.Command {
	var corpusDir, outputDir string

	cmd := &cobra.Command{
		Use:   "postprocess <incoming-dir>",
		Short: "Match every complete session in a directory and write labeled output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPostprocess(cmd, args[0], corpusDir, outputDir)
		},
	}
	cmd.Flags().StringVar(&corpusDir, "corpus-dir", "corpus", "directory holding original transcript JSON, laid out as <year>/session-<name>.json")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory to write labeled segments/text files to")
	return cmd
}

func runPostprocess(cmd *cobra.Command, inputDir, corpusDir, outputDir string) error {
	cfg := configFromCmd(cmd.Context())

	sessions, err := discoverSessions(inputDir, corpusDir, outputDir)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		logger.Warn("no complete sessions found", "dir", inputDir)
		return nil
	}

	opts := driver.Options{
		Normalizer: nil,
		Identifier: normalize.NoopIdentifier{},
		WindowSize: cfg.WindowSize,
		WindowStep: cfg.WindowStep,
	}

	st, runID := openRunStore(cfg, len(sessions))
	if st != nil {
		defer st.Close()
	}

	agg, runErr := driver.Run(context.Background(), sessions, cfg.Workers, opts,
		func(done, total int, s driver.Session, sErr error) {
			logger.Info("session done", "session", s.Name, "progress", fmt.Sprintf("%d/%d", done, total))
		})

	agg.LogSummary()
	if err := writeStatsCSV(outputDir, agg); err != nil {
		logger.Warn("failed to write statistics CSV", "error", err)
	}
	if st != nil {
		for _, row := range agg.Rows {
			if err := st.RecordSession(runID, row, nil); err != nil {
				logger.Warn("failed to record session in store", "session", row.Session, "error", err)
			}
		}
		if err := st.FinishRun(runID, runErr); err != nil {
			logger.Warn("failed to finish run record", "error", err)
		}
	}
	return runErr
}

// openRunStore opens the run-history store if configured, logging (rather
// than failing) when it can't be opened: history persistence is a
// supplementary feature, not a prerequisite for postprocessing.
func openRunStore(cfg config.Config, total int) (*store.Store, string) {
	if cfg.StorePath == "" {
		return nil, ""
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		logger.Warn("run history store unavailable", "error", err)
		return nil, ""
	}
	runID, err := st.StartRun(cfg.Workers, total)
	if err != nil {
		logger.Warn("could not start run record", "error", err)
		st.Close()
		return nil, ""
	}
	return st, runID
}

func writeStatsCSV(outputDir string, agg *stats.Aggregate) error {
	path := filepath.Join(outputDir, "postprocess-statistics.csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return agg.WriteCSV(f)
}

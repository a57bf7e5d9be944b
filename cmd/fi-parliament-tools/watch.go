package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalto-speech/fi-parliament-tools/internal/driver"
	"github.com/aalto-speech/fi-parliament-tools/internal/normalize"
	watchpkg "github.com/aalto-speech/fi-parliament-tools/internal/watch"
	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

func watchCmd() *cobra.Command {
	var corpusDir, outputDir string

	cmd := &cobra.Command{
		Use:   "watch <incoming-dir>",
		Short: "Watch a directory and postprocess each session as its files complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], corpusDir, outputDir)
		},
	}
	cmd.Flags().StringVar(&corpusDir, "corpus-dir", "corpus", "directory holding original transcript JSON, laid out as <year>/session-<name>.json")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory to write labeled segments/text files to")
	return cmd
}

func runWatch(cmd *cobra.Command, inputDir, corpusDir, outputDir string) error {
	cfg := configFromCmd(cmd.Context())
	opts := driver.Options{
		Identifier: normalize.NoopIdentifier{},
		WindowSize: cfg.WindowSize,
		WindowStep: cfg.WindowStep,
	}

	w := watchpkg.New(inputDir, func(s watchpkg.Session) {
		session := driver.Session{
			Name:           s.Name,
			TranscriptPath: transcriptPath(corpusDir, s.Name),
			CTMPath:        s.CTMPath,
			SegmentsPath:   s.SegmentsPath,
			TextPath:       s.TextPath,
			OutputDir:      outputDir,
		}
		stat, err := driver.ProcessSession(session, opts)
		if err != nil {
			logger.Error("session failed", "session", s.Name, "error", err)
			return
		}
		logger.Info("session processed", "session", s.Name, "segments", stat.Segments, "dropped", stat.DroppedSegments)
	})

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	return w.Run(stop)
}

func transcriptPath(corpusDir, name string) string {
	m := sessionNamePattern.FindStringSubmatch(name)
	year := ""
	if m != nil {
		year = m[2]
	}
	return filepath.Join(corpusDir, year, fmt.Sprintf("session-%s.json", name))
}

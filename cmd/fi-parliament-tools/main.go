// Command fi-parliament-tools drives the speaker-labeling pipeline: matching
// parliament transcripts against Kaldi CTM/segments/text output, writing
// the labeled result, and optionally serving a status API over run history.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalto-speech/fi-parliament-tools/internal/config"
	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "fi-parliament-tools",
		Short: "Speaker-label Finnish parliament transcripts against ASR alignment output",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (optional)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger.Init(os.Stderr, cfg.LogLevel)
		cmd.SetContext(withConfig(cmd.Context(), cfg))
		return nil
	}

	cmd.AddCommand(postprocessCmd(), watchCmd(), serveCmd(), authCmd())
	return cmd
}

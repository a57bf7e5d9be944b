package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"github.com/aalto-speech/fi-parliament-tools/internal/api"
	"github.com/aalto-speech/fi-parliament-tools/internal/auth"
	"github.com/aalto-speech/fi-parliament-tools/internal/store"
	"github.com/aalto-speech/fi-parliament-tools/pkg/logger"
)

func serveCmd() *cobra.Command {
	var install, uninstall bool
	var signingKey string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the read-only status API over run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromCmd(cmd.Context())
			if signingKey == "" {
				signingKey = cfg.APISigningKey
			}
			if signingKey == "" && !install && !uninstall {
				return fmt.Errorf("a signing key is required: pass --signing-key or set api_signing_key in config")
			}
			svcProgram := &apiService{
				addr:       cfg.APIAddr,
				storePath:  cfg.StorePath,
				signingKey: signingKey,
			}
			svcCfg := &service.Config{
				Name:        "fi-parliament-tools",
				DisplayName: "fi-parliament-tools status API",
				Description: "Serves run and session statistics history over HTTP",
			}
			svc, err := service.New(svcProgram, svcCfg)
			if err != nil {
				return fmt.Errorf("create service: %w", err)
			}

			switch {
			case install:
				return svc.Install()
			case uninstall:
				return svc.Uninstall()
			default:
				return svc.Run()
			}
		},
	}
	cmd.Flags().BoolVar(&install, "install", false, "install as an OS service instead of running in the foreground")
	cmd.Flags().BoolVar(&uninstall, "uninstall", false, "uninstall the OS service")
	cmd.Flags().StringVar(&signingKey, "signing-key", "", "JWT signing key for the status API (required unless installing/uninstalling)")
	return cmd
}

// apiService adapts the status API's start/stop lifecycle to
// kardianos/service's Interface, so `serve` can run standalone or as an
// installed background service.
type apiService struct {
	addr       string
	storePath  string
	signingKey string

	srv *api.Server
	st  *store.Store
}

func (s *apiService) Start(svc service.Service) error {
	st, err := store.Open(s.storePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	s.st = st

	issuer := auth.NewIssuer(s.signingKey, 24*time.Hour)
	s.srv = api.New(s.addr, st, issuer)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil {
			logger.Error("status API stopped", "error", err)
		}
	}()
	return nil
}

func (s *apiService) Stop(svc service.Service) error {
	if s.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(ctx); err != nil {
			logger.Warn("status API shutdown error", "error", err)
		}
	}
	if s.st != nil {
		return s.st.Close()
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalto-speech/fi-parliament-tools/internal/auth"
)

// authCmd groups the operator-facing credential helpers for the status API:
// hashing a shared secret for the config file, and exchanging that secret
// for a bearer token without standing up the whole server.
func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the status API's shared secret and bearer tokens",
	}
	cmd.AddCommand(hashSecretCmd(), issueTokenCmd())
	return cmd
}

func hashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret <plain>",
		Short: "Bcrypt-hash a shared secret for api_secret_hash in config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashSecret(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func issueTokenCmd() *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Exchange the shared secret for a status API bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromCmd(cmd.Context())
			if !auth.CheckSecret(cfg.APISecretHash, secret) {
				return fmt.Errorf("secret does not match the configured api_secret_hash")
			}
			issuer := auth.NewIssuer(cfg.APISigningKey, 0)
			token, err := issuer.Issue("operator")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "the plaintext shared secret to exchange for a token")
	return cmd
}

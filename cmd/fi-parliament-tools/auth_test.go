package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalto-speech/fi-parliament-tools/internal/auth"
	"github.com/aalto-speech/fi-parliament-tools/internal/config"
)

func TestHashSecretCmdPrintsBcryptHash(t *testing.T) {
	cmd := hashSecretCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"my-secret"})

	require.NoError(t, cmd.Execute())
	assert.True(t, auth.CheckSecret(trimNewline(out.String()), "my-secret"))
}

func TestIssueTokenCmdRejectsWrongSecret(t *testing.T) {
	hash, err := auth.HashSecret("the-real-secret")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.APISecretHash = hash
	cfg.APISigningKey = "signing-key"

	cmd := issueTokenCmd()
	cmd.SetContext(withConfig(nil, cfg))
	cmd.SetArgs([]string{"--secret", "wrong-secret"})

	assert.Error(t, cmd.Execute())
}

func TestIssueTokenCmdIssuesTokenForCorrectSecret(t *testing.T) {
	hash, err := auth.HashSecret("the-real-secret")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.APISecretHash = hash
	cfg.APISigningKey = "signing-key"

	cmd := issueTokenCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(withConfig(nil, cfg))
	cmd.SetArgs([]string{"--secret", "the-real-secret"})

	require.NoError(t, cmd.Execute())

	issuer := auth.NewIssuer(cfg.APISigningKey, 0)
	subject, err := issuer.Verify(trimNewline(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "operator", subject)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

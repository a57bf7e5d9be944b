package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalto-speech/fi-parliament-tools/internal/auth"
	"github.com/aalto-speech/fi-parliament-tools/internal/store"
)

func newTestServer(t *testing.T) (*Server, *auth.Issuer) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	issuer := auth.NewIssuer("test-signing-key", time.Hour)
	return New(":0", st, issuer), issuer
}

func do(s *Server, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthzRequiresNoAuth(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunsRejectsMissingToken(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodGet, "/runs", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRunsRejectsInvalidToken(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodGet, "/runs", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRunsListsEmptyWithValidToken(t *testing.T) {
	s, issuer := newTestServer(t)
	token, err := issuer.Issue("operator")
	require.NoError(t, err)

	w := do(s, http.MethodGet, "/runs", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetRunReturnsNotFoundForUnknownID(t *testing.T) {
	s, issuer := newTestServer(t)
	token, err := issuer.Issue("operator")
	require.NoError(t, err)

	w := do(s, http.MethodGet, "/runs/does-not-exist", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

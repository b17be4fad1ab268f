package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pocketledger/internal/logging"
	"pocketledger/internal/server/config"
	entriesrepo "pocketledger/internal/server/repositories/entries"
	usersrepo "pocketledger/internal/server/repositories/users"
	"pocketledger/internal/server/services"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenAddr:            ":0",
		Mode:                  "test",
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
		BcryptCost:            bcrypt.MinCost,
	}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestServer runs the real services on the in-memory repositories, so
// requests exercise the full stack below the transport.
func newTestServer(t *testing.T, ready bool) *Server {
	t.Helper()
	cfg := testConfig()
	us := services.NewUserService(usersrepo.NewMemoryRepository(), cfg)
	es := services.NewEntryService(entriesrepo.NewMemoryRepository())
	return NewServer(cfg, testLogger(), us, es, func() bool { return ready })
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func registerAndLogin(t *testing.T, srv *Server, username, password string) string {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/register", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

package quantex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quantex-exchange/quantex-go/credstore"
)

func newTestClient(t *testing.T, handler http.Handler, mutate func(*Config)) (*Client, *credstore.MemoryStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := defaultConfig()
	cfg.API.BaseURL = server.URL
	cfg.API.Timeout = 5 * time.Second
	cfg.Session.HydrateTimeout = 5 * time.Second
	cfg.Metrics.Enabled = true
	if mutate != nil {
		mutate(&cfg)
	}

	store := credstore.NewMemoryStore()
	client, err := New().
		WithConfig(cfg).
		WithCredentialStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(client.Close)

	return client, store
}

func signTestToken(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"uid": userID,
		"exp": expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func seedCredentials(t *testing.T, store credstore.Store, user User, bearerToken string) {
	t.Helper()

	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if err := store.Save(context.Background(), credstore.Credentials{User: raw, Token: bearerToken}); err != nil {
		t.Fatalf("seed credentials: %v", err)
	}
}

func decodeTestBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

package quantex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quantex-exchange/quantex-go/credstore"
)

func TestHydrateRevalidatesPersistedUser(t *testing.T) {
	fresh := User{ID: "u1", Email: "alice@example.com", Name: "Alice Fresh", Role: "user", Verified: true}
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/u1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok", "user": fresh})
	}), nil)

	stale := User{ID: "u1", Email: "alice@example.com", Name: "Alice Stale"}
	seedCredentials(t, store, stale, signTestToken(t, "u1", time.Now().Add(time.Hour)))

	if err := client.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	got, ok := client.CurrentUser()
	if !ok {
		t.Fatal("expected a hydrated user")
	}
	if !reflect.DeepEqual(got, fresh) {
		t.Fatalf("expected backend record %+v, got %+v", fresh, got)
	}
	if client.State() != StateReady {
		t.Fatalf("expected StateReady, got %s", client.State())
	}
	if got := client.MetricsSnapshot().Counters[MetricHydrateSuccess]; got != 1 {
		t.Fatalf("expected 1 hydrate success, got %d", got)
	}

	// The durable mirror is rewritten with the revalidated record.
	creds, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var mirrored User
	if err := json.Unmarshal(creds.User, &mirrored); err != nil {
		t.Fatalf("unmarshal mirror: %v", err)
	}
	if mirrored.Name != "Alice Fresh" {
		t.Fatalf("expected mirror to carry the revalidated record, got %+v", mirrored)
	}
}

func TestHydrateEmptyStoreEndsReadyUnauthenticated(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected for an empty store")
	}), nil)

	if err := client.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if _, ok := client.CurrentUser(); ok {
		t.Fatal("expected no user")
	}
	if client.State() != StateReady {
		t.Fatalf("expected StateReady, got %s", client.State())
	}
	if got := client.MetricsSnapshot().Counters[MetricHydrateEmpty]; got != 1 {
		t.Fatalf("expected 1 hydrate empty, got %d", got)
	}
}

func TestHydrateTimeoutKeepsStaleUser(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok", "user": User{ID: "u1"}})
	}), func(cfg *Config) {
		cfg.Session.HydrateTimeout = 50 * time.Millisecond
	})

	stale := User{ID: "u1", Email: "alice@example.com", Name: "Alice Stale"}
	seedCredentials(t, store, stale, signTestToken(t, "u1", time.Now().Add(time.Hour)))

	if err := client.Hydrate(context.Background()); err != nil {
		t.Fatalf("expected hydration failure to be swallowed, got %v", err)
	}

	got, ok := client.CurrentUser()
	if !ok {
		t.Fatal("expected the stale user to be kept")
	}
	if got.Name != "Alice Stale" {
		t.Fatalf("expected stale record, got %+v", got)
	}
	if client.State() != StateReady {
		t.Fatalf("expected StateReady, got %s", client.State())
	}
	if got := client.MetricsSnapshot().Counters[MetricHydrateTimeout]; got != 1 {
		t.Fatalf("expected 1 hydrate timeout, got %d", got)
	}
}

func TestHydrateFailureInvalidatesWhenOptedIn(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	}), func(cfg *Config) {
		cfg.Session.InvalidateOnRefreshFailure = true
	})

	seedCredentials(t, store, User{ID: "u1"}, signTestToken(t, "u1", time.Now().Add(time.Hour)))

	if err := client.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if _, ok := client.CurrentUser(); ok {
		t.Fatal("expected the cached user to be cleared")
	}
}

func TestHydrateSkipsFetchForExpiredToken(t *testing.T) {
	var calls atomic.Int64
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok"})
	}), nil)

	seedCredentials(t, store, User{ID: "u1"}, signTestToken(t, "u1", time.Now().Add(-time.Hour)))

	if err := client.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if _, ok := client.CurrentUser(); ok {
		t.Fatal("expected no user for an expired token")
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no backend call, got %d", calls.Load())
	}
	if client.State() != StateReady {
		t.Fatalf("expected StateReady, got %s", client.State())
	}
}

func TestConcurrentHydrateCoalesces(t *testing.T) {
	var calls atomic.Int64
	arrived := make(chan struct{})
	release := make(chan struct{})

	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		close(arrived)
		<-release
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok", "user": User{ID: "u1"}})
	}), nil)

	seedCredentials(t, store, User{ID: "u1"}, signTestToken(t, "u1", time.Now().Add(time.Hour)))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := client.Hydrate(context.Background()); err != nil {
			t.Errorf("Hydrate failed: %v", err)
		}
	}()

	<-arrived
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := client.Revalidate(context.Background()); err != nil {
			t.Errorf("Revalidate failed: %v", err)
		}
	}()

	// Give the second call time to join the in-flight fetch before release.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected one backend fetch, got %d", calls.Load())
	}
	if got := client.MetricsSnapshot().Counters[MetricRevalidateCoalesced]; got != 1 {
		t.Fatalf("expected 1 coalesced revalidation, got %d", got)
	}
}

func TestLogoutForgetsSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
	}), nil)

	if err := client.AdoptSession(context.Background(), User{ID: "u1"}, "tok"); err != nil {
		t.Fatalf("AdoptSession failed: %v", err)
	}
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, ok := client.CurrentUser(); ok {
		t.Fatal("expected no user after logout")
	}
	if client.Token() != "" {
		t.Fatal("expected no token after logout")
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, credstore.ErrNotFound) {
		t.Fatalf("expected cleared store, got %v", err)
	}
}

func TestAdoptSessionIsIdempotent(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
	}), nil)

	u := User{ID: "u1", Email: "alice@example.com", Name: "Alice"}
	for i := 0; i < 2; i++ {
		if err := client.AdoptSession(context.Background(), u, "tok"); err != nil {
			t.Fatalf("AdoptSession failed: %v", err)
		}
	}

	got, ok := client.CurrentUser()
	if !ok || !reflect.DeepEqual(got, u) {
		t.Fatalf("expected %+v, got %+v (ok=%v)", u, got, ok)
	}

	creds, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var persisted User
	if err := json.Unmarshal(creds.User, &persisted); err != nil {
		t.Fatalf("unmarshal persisted user: %v", err)
	}
	if !reflect.DeepEqual(persisted, u) || creds.Token != "tok" {
		t.Fatalf("expected identical persisted copy, got %+v token=%q", persisted, creds.Token)
	}
}

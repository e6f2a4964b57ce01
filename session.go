package quantex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/quantex-exchange/quantex-go/credstore"
)

// errTokenExpired marks a persisted bearer token already past its exp
// claim; hydration skips the revalidation fetch for it.
var errTokenExpired = errors.New("persisted token expired")

// errCredentialStore wraps durable-storage failures during session
// operations.
var errCredentialStore = errors.New("credential store failure")

// sessionState is the process-wide "who is logged in" record. The mutex
// guards user, token, and state together; inflight coalesces concurrent
// hydrations into a single fetch.
type sessionState struct {
	mu       sync.RWMutex
	user     *User
	token    string
	state    SessionState
	inflight chan struct{}
}

type userEnvelope struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// CurrentUser returns the cached account record and whether one is held.
// Consumers gate rendering on this together with [Client.State]: a false
// result in [StateReady] means unauthenticated, in [StateHydrating] it
// means undecided.
func (c *Client) CurrentUser() (User, bool) {
	c.session.mu.RLock()
	defer c.session.mu.RUnlock()

	if c.session.user == nil {
		return User{}, false
	}
	return *c.session.user, true
}

// State returns the session lifecycle state. It replaces the source
// product's boolean fetching flag: [StateHydrating] corresponds to
// fetching=true, [StateReady] to fetching=false.
func (c *Client) State() SessionState {
	c.session.mu.RLock()
	defer c.session.mu.RUnlock()
	return c.session.state
}

// Token returns the bearer token currently held, or the empty string.
func (c *Client) Token() string {
	c.session.mu.RLock()
	defer c.session.mu.RUnlock()
	return c.session.token
}

func (c *Client) requireAuth() error {
	if c.Token() == "" {
		return ErrNotAuthenticated
	}
	return nil
}

// AdoptSession unconditionally replaces the in-memory session with the
// given record and token, and rewrites the durable mirror in the same
// operation. No validation, no network call: the backend already vouched
// for the pair when it issued the token.
func (c *Client) AdoptSession(ctx context.Context, user User, bearerToken string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encode user record: %v", errCredentialStore, err)
	}

	c.session.mu.Lock()
	u := user
	c.session.user = &u
	c.session.token = bearerToken
	c.session.state = StateReady
	c.session.mu.Unlock()

	if err := c.store.Save(ctx, credstore.Credentials{User: raw, Token: bearerToken}); err != nil {
		c.emitAudit(ctx, auditEventSessionAdopted, false, user.ID, "", errCredentialStore, nil)
		return fmt.Errorf("%w: %v", errCredentialStore, err)
	}

	c.emitAudit(ctx, auditEventSessionAdopted, true, user.ID, "", nil, nil)
	return nil
}

// Logout forgets the session on this side only: the durable mirror is
// cleared and the in-memory user dropped. The backend is not contacted, so
// the token stays valid server-side until it expires.
func (c *Client) Logout(ctx context.Context) error {
	c.session.mu.Lock()
	userID := ""
	if c.session.user != nil {
		userID = c.session.user.ID
	}
	c.session.user = nil
	c.session.token = ""
	c.session.state = StateReady
	c.session.mu.Unlock()

	err := c.store.Clear(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %v", errCredentialStore, err)
	}

	c.metricInc(MetricLogout)
	c.emitAudit(ctx, auditEventLogout, err == nil, userID, "", err, nil)
	return err
}

// Hydrate reconstructs the session from the durable mirror: no persisted
// credentials means an unauthenticated [StateReady]; persisted credentials
// trigger a revalidation fetch of the canonical account record, bounded by
// [SessionConfig.HydrateTimeout]. A failed or timed-out fetch is logged
// and audited but never returned — the cached record is kept (or cleared,
// when [SessionConfig.InvalidateOnRefreshFailure] is set) and downstream
// route guards decide what to render. Only credential-store I/O failures
// surface as errors.
//
// Concurrent Hydrate and Revalidate calls coalesce into the one in-flight
// fetch instead of stampeding the backend.
func (c *Client) Hydrate(ctx context.Context) error {
	if c == nil || c.store == nil {
		return ErrClientNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c.session.mu.Lock()
	if c.session.inflight != nil {
		wait := c.session.inflight
		c.session.mu.Unlock()
		c.metricInc(MetricRevalidateCoalesced)
		select {
		case <-wait:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	done := make(chan struct{})
	c.session.inflight = done
	c.session.state = StateHydrating
	c.session.mu.Unlock()

	defer func() {
		c.session.mu.Lock()
		c.session.state = StateReady
		c.session.inflight = nil
		c.session.mu.Unlock()
		close(done)
	}()

	creds, err := c.store.Load(ctx)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			c.session.mu.Lock()
			c.session.user = nil
			c.session.token = ""
			c.session.mu.Unlock()
			c.metricInc(MetricHydrateEmpty)
			c.emitAudit(ctx, auditEventHydrateEmpty, true, "", "", nil, nil)
			return nil
		}
		c.metricInc(MetricHydrateFailure)
		c.emitAudit(ctx, auditEventHydrateFailure, false, "", "", errCredentialStore, nil)
		return fmt.Errorf("%w: %v", errCredentialStore, err)
	}

	var cached User
	if err := json.Unmarshal(creds.User, &cached); err != nil || cached.ID == "" {
		// Corrupt mirror: treat as unauthenticated rather than failing the
		// whole bootstrap.
		log.Print("quantex: persisted user record unreadable, treating as logged out")
		c.session.mu.Lock()
		c.session.user = nil
		c.session.token = ""
		c.session.mu.Unlock()
		c.metricInc(MetricHydrateFailure)
		c.emitAudit(ctx, auditEventHydrateFailure, false, "", "", errCredentialStore, nil)
		return nil
	}

	if c.inspector.Expired(creds.Token, c.config.Session.TokenLeeway, time.Now()) {
		c.session.mu.Lock()
		c.session.user = nil
		c.session.token = ""
		c.session.mu.Unlock()
		c.metricInc(MetricHydrateFailure)
		c.emitAudit(ctx, auditEventHydrateFailure, false, cached.ID, "", errTokenExpired, nil)
		return nil
	}

	// Adopt the cached pair first so the revalidation fetch authenticates,
	// and so a failed refresh leaves the stale-but-plausible record in
	// place rather than a blank session.
	c.session.mu.Lock()
	provisional := cached
	c.session.user = &provisional
	c.session.token = creds.Token
	c.session.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, c.config.Session.HydrateTimeout)
	defer cancel()

	var envelope userEnvelope
	fetchErr := c.do(fetchCtx, "GET", "/users/"+url.PathEscape(cached.ID), nil, &envelope)
	if fetchErr != nil {
		if errors.Is(fetchErr, context.DeadlineExceeded) {
			c.metricInc(MetricHydrateTimeout)
		} else {
			c.metricInc(MetricHydrateFailure)
		}
		log.Print("quantex: session revalidation failed, keeping cached user")
		if c.config.Session.InvalidateOnRefreshFailure {
			c.session.mu.Lock()
			c.session.user = nil
			c.session.token = ""
			c.session.mu.Unlock()
		}
		c.emitAudit(ctx, auditEventHydrateFailure, false, cached.ID, "", fetchErr, nil)
		return nil
	}

	c.session.mu.Lock()
	fresh := envelope.User
	c.session.user = &fresh
	c.session.mu.Unlock()

	if raw, err := json.Marshal(envelope.User); err == nil {
		// Mirror update is best-effort: the in-memory session is already
		// canonical for this process.
		if err := c.store.Save(ctx, credstore.Credentials{User: raw, Token: creds.Token}); err != nil {
			log.Print("quantex: credential mirror update failed")
		}
	}

	c.metricInc(MetricHydrateSuccess)
	c.emitAudit(ctx, auditEventHydrateSuccess, true, envelope.User.ID, "", nil, nil)
	return nil
}

// Revalidate re-fetches the canonical account record for an established
// session. It is the navigation-into-protected-area trigger: call it when
// entering the authenticated area so the cached record tracks server-side
// changes (KYC approval, tier updates, balance-affecting admin actions).
func (c *Client) Revalidate(ctx context.Context) error {
	return c.Hydrate(ctx)
}

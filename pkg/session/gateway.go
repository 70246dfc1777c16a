package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/naveenspark/financeflow/pkg/client"
	"github.com/naveenspark/financeflow/pkg/domain"
)

var validate = validator.New()

// Config configures a Gateway.
type Config struct {
	// BaseURL is the API base URL, e.g. http://localhost:8080/api.
	BaseURL string
	// Store persists the session. Defaults to a MemoryStore.
	Store Store
	// Navigate is called once each time a 401 ends the session. The host
	// application uses it to return to its sign-in screen.
	Navigate func()
	// Logger receives state transitions. The zero value discards.
	Logger zerolog.Logger
	// Timeout and Transport are passed to the API client.
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Gateway owns the session. It is the only writer of the in-memory session
// and of the Store; every API call made through Client carries its token.
type Gateway struct {
	mu       sync.RWMutex
	current  Session
	store    Store
	navigate func()
	log      zerolog.Logger
	client   *client.Client
}

// New creates a Gateway in the Anonymous state. Call Restore to load a
// persisted session.
func New(cfg Config) *Gateway {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	g := &Gateway{
		store:    store,
		navigate: cfg.Navigate,
		log:      cfg.Logger.With().Str("component", "session").Logger(),
	}
	g.client = client.New(cfg.BaseURL, g,
		client.WithTimeout(cfg.Timeout),
		client.WithTransport(cfg.Transport),
		client.WithLogger(cfg.Logger),
	)
	return g
}

// Client returns the API client bound to this session.
func (g *Gateway) Client() *client.Client {
	return g.client
}

// Current returns a snapshot of the session.
func (g *Gateway) Current() Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current.clone()
}

// IsAuthenticated reports whether a token is held.
func (g *Gateway) IsAuthenticated() bool {
	return g.Current().IsAuthenticated()
}

// State returns the current authentication state.
func (g *Gateway) State() State {
	return g.Current().State()
}

// ExpiresAt returns the expiry encoded in the token, if it is a JWT with an
// exp claim. It is informational and never used to end the session.
func (g *Gateway) ExpiresAt() (time.Time, bool) {
	return tokenExpiry(g.Token())
}

// Token implements client.Authenticator.
func (g *Gateway) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current.Token
}

// Unauthorized implements client.Authenticator. It ends the session only if
// sentToken is still the current token, so any number of 401s answering
// requests of one session produce a single transition and a single Navigate.
func (g *Gateway) Unauthorized(sentToken string) {
	g.mu.Lock()
	if sentToken == "" || g.current.Token != sentToken {
		g.mu.Unlock()
		return
	}
	g.current = Session{}
	err := g.clearStore()
	g.mu.Unlock()

	if err != nil {
		g.log.Error().Err(err).Msg("clear persisted session after 401")
	}
	g.log.Warn().Msg("session rejected by server, signed out")

	if g.navigate != nil {
		g.navigate()
	}
}

// Login sends credentials to the API. On success the token and user are
// held in memory and persisted, and the new session is returned. Failures
// are *AuthError values with a display-ready message.
func (g *Gateway) Login(ctx context.Context, creds domain.Credentials) (Session, error) {
	resp, err := g.client.Login(ctx, creds)
	if err != nil {
		g.log.Info().Err(err).Str("email", creds.Email).Msg("login failed")
		return Session{}, loginError(err)
	}
	if resp.Token == "" {
		return Session{}, &AuthError{Op: "login", Message: msgLoginFailed, Err: errors.New("response has no token")}
	}

	next := Session{Token: resp.Token, User: resp.User}

	g.mu.Lock()
	if err := g.persist(next); err != nil {
		// Keep memory and storage in agreement: neither holds the new session.
		if clearErr := g.clearStore(); clearErr != nil {
			g.log.Error().Err(clearErr).Msg("roll back partial session write")
		}
		g.mu.Unlock()
		return Session{}, &AuthError{Op: "login", Message: "Could not save your session. Please try again.", Err: err}
	}
	g.current = next
	snapshot := g.current.clone()
	g.mu.Unlock()

	g.log.Info().Str("email", creds.Email).Msg("signed in")
	return snapshot, nil
}

// Register validates reg locally and sends it to the API. Success never
// signs the user in: the account must first be verified by email.
func (g *Gateway) Register(ctx context.Context, reg domain.Registration) error {
	if err := validate.Struct(reg); err != nil {
		return validationError(err)
	}
	if err := g.client.Register(ctx, reg); err != nil {
		g.log.Info().Err(err).Str("email", reg.Email).Msg("registration failed")
		return registerError(err)
	}
	g.log.Info().Str("email", reg.Email).Msg("registered, awaiting email verification")
	return nil
}

// Logout clears the session in memory and in storage. It never contacts the
// server and is safe to call in any state. The in-memory session is cleared
// even when the returned storage error is non-nil.
func (g *Gateway) Logout() error {
	g.mu.Lock()
	was := g.current.State()
	g.current = Session{}
	err := g.clearStore()
	g.mu.Unlock()

	if was == Authenticated {
		g.log.Info().Msg("signed out")
	}
	if err != nil {
		return fmt.Errorf("session.Logout: %w", err)
	}
	return nil
}

// Restore loads the persisted session into memory. It performs no network
// check; a stale token is discovered by the first request that returns 401.
// Incomplete or unreadable entries are cleared and the Gateway stays
// Anonymous.
func (g *Gateway) Restore() error {
	token, hasToken, err := g.store.Get(KeyToken)
	if err != nil {
		return fmt.Errorf("session.Restore: %w", err)
	}
	rawUser, hasUser, err := g.store.Get(KeyUser)
	if err != nil {
		return fmt.Errorf("session.Restore: %w", err)
	}

	if !hasToken && !hasUser {
		return nil
	}

	var user *domain.User
	if hasToken && token != "" && hasUser {
		user, err = decodeUser(rawUser)
	} else {
		err = errors.New("incomplete session entry")
	}
	if err != nil {
		g.log.Warn().Err(err).Msg("discarding persisted session")
		g.mu.Lock()
		clearErr := g.clearStore()
		g.mu.Unlock()
		if clearErr != nil {
			return fmt.Errorf("session.Restore: %w", clearErr)
		}
		return nil
	}

	g.mu.Lock()
	g.current = Session{Token: token, User: user}
	g.mu.Unlock()

	g.log.Debug().Str("user", user.DisplayName()).Msg("session restored")
	return nil
}

// persist writes both entries. Callers hold g.mu.
func (g *Gateway) persist(s Session) error {
	if err := g.store.Set(KeyToken, s.Token); err != nil {
		return err
	}
	user, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	return g.store.Set(KeyUser, user)
}

// clearStore deletes both entries, attempting both even if one fails.
// Callers hold g.mu.
func (g *Gateway) clearStore() error {
	return errors.Join(g.store.Delete(KeyToken), g.store.Delete(KeyUser))
}

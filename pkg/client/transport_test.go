package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/financeflow/pkg/domain"
)

// recordingAuth is an Authenticator that records 401 notifications.
type recordingAuth struct {
	mu           sync.Mutex
	token        string
	unauthorized []string
}

func (a *recordingAuth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *recordingAuth) Unauthorized(sent string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unauthorized = append(a.unauthorized, sent)
}

func (a *recordingAuth) calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.unauthorized...)
}

func TestTransportAttachesBearerToken(t *testing.T) {
	var gotAuth, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get(RequestIDHeader)
		w.Write([]byte(`[]`)) //nolint:errcheck
	}))
	defer srv.Close()

	auth := &recordingAuth{token: "t1"}
	c := New(srv.URL, auth)
	_, err := c.ListAccounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer t1", gotAuth)
	_, parseErr := uuid.Parse(gotID)
	assert.NoError(t, parseErr, "request id should be a uuid")
}

func TestTransportOmitsHeaderWithoutToken(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`[]`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, &recordingAuth{})
	_, err := c.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.False(t, sawHeader, "no Authorization header expected without a token")
}

func TestTransportReadsTokenPerRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`)) //nolint:errcheck
	}))
	defer srv.Close()

	auth := &recordingAuth{}
	c := New(srv.URL, auth)
	ctx := context.Background()

	_, err := c.CurrentBudgets(ctx)
	require.NoError(t, err)
	auth.mu.Lock()
	auth.token = "fresh"
	auth.mu.Unlock()
	_, err = c.CurrentBudgets(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer fresh"}, seen)
}

func TestTransportReportsUnauthorizedBeforeCallerReturns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	auth := &recordingAuth{token: "stale"}
	c := New(srv.URL, auth)
	_, err := c.ListTransactions(context.Background())

	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, []string{"stale"}, auth.calls(), "401 must be reported once with the sent token")
}

func TestTransportPassesOtherErrorsThrough(t *testing.T) {
	for _, code := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		}))

		auth := &recordingAuth{token: "tok"}
		c := New(srv.URL, auth)
		_, err := c.ListAccounts(context.Background())
		srv.Close()

		require.Error(t, err)
		assert.True(t, IsStatus(err, code), "status %d should pass through", code)
		assert.Empty(t, auth.calls(), "status %d must not trigger the 401 hook", code)
	}
}

func TestTransportDoesNotMutateCallerRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	rt := &sessionTransport{base: http.DefaultTransport, auth: StaticToken("tok")}
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close() //nolint:errcheck

	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get(RequestIDHeader))
}

func TestTransportAuthEndpointsArePublic(t *testing.T) {
	var gotAuth []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	auth := &recordingAuth{token: "live"}
	c := New(srv.URL, auth)
	ctx := context.Background()

	_, err := c.Login(ctx, domain.Credentials{Email: "a@b.c", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	require.Error(t, c.Register(ctx, domain.Registration{FullName: "A", Email: "a@b.c", Password: "x"}))
	_, err = c.VerifyEmail(ctx, "tok")
	require.Error(t, err)
	require.Error(t, c.ResendVerification(ctx, "a@b.c"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "", "", ""}, gotAuth, "auth endpoints carry no bearer token")
	assert.Empty(t, auth.calls(), "a 401 from an auth endpoint is not a session expiry")
}

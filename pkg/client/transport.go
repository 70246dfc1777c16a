package client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Authenticator supplies credentials to outbound requests and is told when a
// response reports them invalid.
type Authenticator interface {
	// Token returns the current bearer token, or "" when there is no session.
	Token() string
	// Unauthorized is called when a response carries HTTP 401. sentToken is
	// the token the request was sent with ("" if none).
	Unauthorized(sentToken string)
}

type publicKey struct{}

// withoutSession marks a request as one of the public /auth endpoints. Such
// requests carry no bearer token and their 401s mean bad credentials, not an
// expired session.
func withoutSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, publicKey{}, true)
}

func isPublic(ctx context.Context) bool {
	public, _ := ctx.Value(publicKey{}).(bool)
	return public
}

// StaticToken is an Authenticator with a fixed token that ignores 401s.
type StaticToken string

// Token returns the fixed token.
func (s StaticToken) Token() string { return string(s) }

// Unauthorized does nothing.
func (StaticToken) Unauthorized(string) {}

// sessionTransport is the interceptor pipeline every request passes through.
// Outbound it stamps a request id and the bearer token; inbound it reports
// 401s to the Authenticator before the caller sees the response.
type sessionTransport struct {
	base http.RoundTripper
	auth Authenticator
	log  zerolog.Logger
}

func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())

	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	public := isPublic(req.Context())
	var token string
	if t.auth != nil && !public {
		token = t.auth.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Debug().Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Str("request_id", reqID).
			Msg("request failed")
		return nil, err
	}

	t.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Str("request_id", reqID).
		Msg("request")

	if resp.StatusCode == http.StatusUnauthorized && t.auth != nil && !public {
		t.auth.Unauthorized(token)
	}
	return resp, nil
}

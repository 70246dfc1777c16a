package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/naveenspark/financeflow/pkg/domain"
)

// The /auth endpoints are public: they go out without the session token and a
// 401 from them never ends the session.

// Login exchanges credentials for a session token and profile.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.post(withoutSession(ctx), "/auth/login", creds, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// Register creates a new account. The account must be verified by email
// before it can sign in, so no session is returned.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	if err := c.post(withoutSession(ctx), "/auth/register", reg, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// VerifyEmail confirms an email address with the token from the
// verification link and returns the server's confirmation text.
func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	params := url.Values{}
	params.Set("token", token)

	var msg string
	if err := c.get(withoutSession(ctx), "/auth/verify?"+params.Encode(), &msg); err != nil {
		return "", fmt.Errorf("client.VerifyEmail: %w", err)
	}
	return msg, nil
}

// ResendVerification asks the server to send a new verification email.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	if err := c.post(withoutSession(ctx), "/auth/resend-verification", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("client.ResendVerification: %w", err)
	}
	return nil
}

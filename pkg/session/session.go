// Package session owns the client's authentication state: the bearer token
// and the signed-in user. It persists both across runs, attaches the token
// to every API request and drops the session when the API answers 401.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/naveenspark/financeflow/pkg/domain"
)

// State is the authentication state of the client.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is a snapshot of the authentication state. User is set only when
// Token is set.
type Session struct {
	Token string
	User  *domain.User
}

// IsAuthenticated reports whether a token is held.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// State returns Authenticated when a token is held.
func (s Session) State() State {
	if s.IsAuthenticated() {
		return Authenticated
	}
	return Anonymous
}

// clone returns a copy whose User does not alias s.User.
func (s Session) clone() Session {
	if s.User == nil {
		return s
	}
	u := *s.User
	return Session{Token: s.Token, User: &u}
}

// userSchemaVersion is bumped whenever the persisted user shape changes.
// Entries with another version are discarded on restore.
const userSchemaVersion = 1

type userEnvelope struct {
	Version int          `json:"version"`
	User    *domain.User `json:"user"`
}

func encodeUser(u *domain.User) (string, error) {
	data, err := json.Marshal(userEnvelope{Version: userSchemaVersion, User: u})
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}
	return string(data), nil
}

func decodeUser(raw string) (*domain.User, error) {
	var env userEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if env.Version != userSchemaVersion {
		return nil, fmt.Errorf("decode user: schema version %d, want %d", env.Version, userSchemaVersion)
	}
	return env.User, nil
}

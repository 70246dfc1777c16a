package domain

// User is the authenticated profile returned by the auth endpoints.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Verified bool   `json:"emailVerified,omitempty"`
}

// DisplayName returns the full name, falling back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the new-account payload. ConfirmPassword is checked
// locally and never sent.
type Registration struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

// AuthResponse is the body of a successful login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

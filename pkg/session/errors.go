package session

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/naveenspark/financeflow/pkg/client"
)

// Generic messages used when the server gives nothing displayable.
const (
	msgLoginFailed    = "Login failed. Please try again."
	msgRegisterFailed = "Registration failed. Please try again."
)

// AuthError is a display-ready login or registration failure.
type AuthError struct {
	// Op is "login" or "register".
	Op string
	// Message is safe to show to the user as-is.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// AsAuthError unwraps err to an *AuthError.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

// loginError prefers the server message, then its field errors.
func loginError(err error) *AuthError {
	msg := msgLoginFailed
	if httpErr, ok := client.AsHTTPError(err); ok {
		if d := httpErr.Display(); d != "" {
			msg = d
		}
	}
	return &AuthError{Op: "login", Message: msg, Err: err}
}

// registerError prefers the server field errors joined, then its message.
func registerError(err error) *AuthError {
	msg := msgRegisterFailed
	if httpErr, ok := client.AsHTTPError(err); ok {
		switch {
		case httpErr.FieldMessage() != "":
			msg = httpErr.FieldMessage()
		case httpErr.Message != "":
			msg = httpErr.Message
		}
	}
	return &AuthError{Op: "register", Message: msg, Err: err}
}

var fieldLabels = map[string]string{
	"FullName": "Full name",
	"Email":    "Email",
	"Password": "Password",
}

// validationError flattens validator errors into one message.
func validationError(err error) *AuthError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &AuthError{Op: "register", Message: msgRegisterFailed, Err: err}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &AuthError{Op: "register", Message: strings.Join(msgs, ", "), Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "ConfirmPassword":
		return "Passwords do not match"
	case fe.Tag() == "email":
		return "Please enter a valid email address"
	case fe.Tag() == "required":
		label := fieldLabels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		return label + " is required"
	default:
		return fe.Field() + " is invalid"
	}
}

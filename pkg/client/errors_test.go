package client

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorBody(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantFields  map[string]string
		wantDisplay string
	}{
		{
			name:        "message field",
			body:        `{"message":"Invalid email or password"}`,
			wantMessage: "Invalid email or password",
			wantDisplay: "Invalid email or password",
		},
		{
			name:        "message preferred over error",
			body:        `{"status":401,"error":"Unauthorized","message":"Bad credentials"}`,
			wantMessage: "Bad credentials",
			wantDisplay: "Bad credentials",
		},
		{
			name:        "error field",
			body:        `{"error":"boom"}`,
			wantMessage: "boom",
			wantDisplay: "boom",
		},
		{
			name:        "fieldErrors object",
			body:        `{"fieldErrors":{"password":"Password is too short","email":"Email already in use"}}`,
			wantFields:  map[string]string{"email": "Email already in use", "password": "Password is too short"},
			wantDisplay: "Password is too short, Email already in use",
		},
		{
			name:        "flat field map",
			body:        `{"fullName":"Name is required","email":"Email is invalid"}`,
			wantFields:  map[string]string{"fullName": "Name is required", "email": "Email is invalid"},
			wantDisplay: "Name is required, Email is invalid",
		},
		{
			name:        "json string",
			body:        `"Verification token expired"`,
			wantMessage: "Verification token expired",
			wantDisplay: "Verification token expired",
		},
		{
			name:        "plain text",
			body:        "Service Unavailable\n",
			wantMessage: "Service Unavailable",
			wantDisplay: "Service Unavailable",
		},
		{
			name: "empty",
			body: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parseErrorBody(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, e.StatusCode)
			assert.Equal(t, tt.wantMessage, e.Message)
			assert.Equal(t, tt.wantFields, e.Fields)
			assert.Equal(t, tt.wantDisplay, e.Display())
		})
	}
}

func TestFieldMessageKeepsServerOrder(t *testing.T) {
	body := `{"fieldErrors":{"fullName":"Name is required","email":"Email is invalid","password":"Password is too short","confirm":7}}`
	e := parseErrorBody(http.StatusBadRequest, []byte(body))
	assert.Equal(t, "Name is required, Email is invalid, Password is too short", e.FieldMessage())

	manual := &HTTPError{StatusCode: 400, Fields: map[string]string{"password": "too short", "email": "taken"}}
	assert.Equal(t, "taken, too short", manual.FieldMessage())
}

func TestIsStatusWrapped(t *testing.T) {
	err := fmt.Errorf("client.ListAccounts: %w", &HTTPError{StatusCode: 401})
	assert.True(t, IsStatus(err, 401))
	assert.False(t, IsStatus(err, 500))
	assert.False(t, IsStatus(fmt.Errorf("plain"), 401))

	httpErr, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 401, httpErr.StatusCode)
}

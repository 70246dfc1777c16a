package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
	// Fields holds per-field validation messages, keyed by field name.
	Fields map[string]string

	// fieldOrder lists the keys of Fields in the order the server sent them.
	fieldOrder []string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Display())
}

// Display returns the server message, or the field errors joined when the
// server sent no message.
func (e *HTTPError) Display() string {
	if e.Message != "" {
		return e.Message
	}
	return e.FieldMessage()
}

// FieldMessage joins the field errors into one string in the order the
// server sent them. Fields set by hand are ordered by field name.
func (e *HTTPError) FieldMessage() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := e.fieldOrder
	if len(keys) != len(e.Fields) {
		keys = make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, ", ")
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// AsHTTPError unwraps err to an *HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// parseErrorBody builds an HTTPError from a response body. It understands
// {"message": ...}, {"error": ...}, {"fieldErrors": {...}}, {"errors": {...}},
// a flat object of field messages, a JSON string, and plain text.
func parseErrorBody(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return e
	}

	var obj map[string]json.RawMessage
	if json.Unmarshal(trimmed, &obj) == nil {
		for _, key := range []string{"message", "error"} {
			if s := rawString(obj[key]); s != "" {
				e.Message = s
				break
			}
		}
		for _, key := range []string{"fieldErrors", "errors"} {
			if f, order := rawStringFields(obj[key]); len(f) > 0 {
				e.Fields, e.fieldOrder = f, order
				break
			}
		}
		if e.Message == "" && e.Fields == nil {
			if f, order := rawStringFields(trimmed); len(f) == len(obj) && len(f) > 0 {
				e.Fields, e.fieldOrder = f, order
			}
		}
		return e
	}

	var s string
	if json.Unmarshal(trimmed, &s) == nil {
		e.Message = s
		return e
	}
	e.Message = string(trimmed)
	return e
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// rawStringFields decodes a JSON object, keeping only string values along
// with their keys in document order.
func rawStringFields(raw json.RawMessage) (map[string]string, []string) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, nil
	}
	fields := make(map[string]string)
	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil
		}
		s := rawString(value)
		if s == "" {
			continue
		}
		if _, seen := fields[key]; !seen {
			order = append(order, key)
		}
		fields[key] = s
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, order
}

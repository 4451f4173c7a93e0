package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// maxErrorText bounds how much of a non-JSON error body ends up in a message
const maxErrorText = 200

// ErrInvalidResponse is wrapped when a successful response is not valid JSON
var ErrInvalidResponse = errors.New("invalid JSON response")

// APIError is returned for every non-2xx response.
// Error() yields Message unchanged so callers can show it as is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an APIError with status 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{StatusCode: status, Message: errorMessage(status, body)}
}

// errorMessage picks a string error, then a string message, then appends details.
// Details that are not a string are appended as compact JSON.
// Bodies that are not JSON are echoed after the status, truncated.
func errorMessage(status int, body []byte) string {
	fallback := fmt.Sprintf("HTTP %d", status)

	text := strings.TrimSpace(string(body))
	if text == "" {
		return fallback
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		var anything any
		if json.Unmarshal(body, &anything) == nil {
			// valid JSON, just not an object
			return fallback
		}
		return fallback + ": " + truncate(text, maxErrorText)
	}

	msg := firstNonEmpty(stringField(fields, "error"), stringField(fields, "message"), fallback)
	if details := detailsText(fields["details"]); details != "" {
		msg += ": " + details
	}
	return msg
}

// stringField returns fields[key] when it holds a string
func stringField(fields map[string]json.RawMessage, key string) string {
	var s string
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return ""
}

func detailsText(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ""
	}
	return buf.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package github

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status=%d message=%s", e.Method, e.Path, e.StatusCode, e.Message)
}

// newAPIError extracts GitHub's {"message": ...} body, falling back to the raw
// text.
func newAPIError(method, path string, status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &APIError{Method: method, Path: path, StatusCode: status, Message: msg}
}

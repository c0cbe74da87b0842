package blogapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is returned for non-2xx responses.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Unauthorized reports whether the server rejected the bearer token.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// NetworkError wraps a transport failure where no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "network error"
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UploadError is returned when an upload succeeded at the HTTP level but the
// response did not carry a file URL.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is an APIError for a rejected token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// decodeAPIError builds an APIError from a failed response, preferring the
// body's message, then error, then a string errors field.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		var text string
		if json.Unmarshal(body, &text) == nil {
			apiErr.Message = strings.TrimSpace(text)
		}
		return apiErr
	}

	switch {
	case strings.TrimSpace(payload.Message) != "":
		apiErr.Message = strings.TrimSpace(payload.Message)
	case strings.TrimSpace(payload.Error) != "":
		apiErr.Message = strings.TrimSpace(payload.Error)
	case len(payload.Errors) > 0:
		var text string
		if json.Unmarshal(payload.Errors, &text) == nil {
			apiErr.Message = strings.TrimSpace(text)
		}
	}
	return apiErr
}

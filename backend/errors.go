package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
)

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Is lets callers match on the portal's sentinel errors by status code
func (e *APIError) Is(target error) bool {
	switch target {
	case apperrors.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case apperrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case apperrors.ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case apperrors.ErrBackendUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// IsAuthFailure reports whether err means the stored credentials can no longer be used
func IsAuthFailure(err error) bool {
	return apperrors.Is(err, apperrors.ErrUnauthorized) ||
		apperrors.Is(err, apperrors.ErrNotLoggedIn) ||
		apperrors.Is(err, apperrors.ErrNoRefreshToken)
}

// newAPIError reads the backend's error body. The backend answers with
// {"error": "..."}, {"message": "..."} or a map of field name to messages.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	for _, key := range []string{"error", "message", "detail"} {
		if msg, ok := payload[key].(string); ok && msg != "" {
			apiErr.Message = msg
			return apiErr
		}
	}

	fields := make([]string, 0, len(payload))
	for field := range payload {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var messages []string
	for _, field := range fields {
		switch v := payload[field].(type) {
		case string:
			messages = append(messages, field+": "+v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					messages = append(messages, field+": "+s)
				}
			}
		}
	}
	if len(messages) > 0 {
		apiErr.Message = strings.Join(messages, "; ")
	}
	return apiErr
}

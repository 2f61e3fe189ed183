package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the classifier endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("classifier API request failed: %s (HTTP %d)", e.Message, e.StatusCode)
}

// newAPIError maps a status code to a message mirroring the upstream
// provider's common failure modes.
func newAPIError(statusCode int, body string) *APIError {
	var msg string
	switch statusCode {
	case http.StatusUnauthorized:
		msg = "API key invalid or expired"
	case http.StatusTooManyRequests:
		msg = "rate limited, retry later"
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		msg = "AI service temporarily unavailable"
	default:
		msg = "HTTP " + fmt.Sprint(statusCode)
	}
	if body != "" {
		msg += ": " + truncateBody(body)
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}

func truncateBody(body string) string {
	const max = 256
	if len(body) > max {
		return body[:max]
	}
	return body
}

// Retryable reports whether a classifier call that returned err is worth
// retrying. Authentication failures are permanent; rate limits, 5xx
// responses and transport errors are transient. Anything else non-2xx is
// treated as retryable with a generic message.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode != http.StatusUnauthorized
	}

	// Network and I/O failures, malformed responses: transient.
	return true
}

package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnknownKind indicates a resource kind with no listing endpoint.
var ErrUnknownKind = errors.New("github: no endpoint for resource kind")

// APIError represents a non-success GitHub API response.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d (URL: %s)", e.StatusCode, e.URL)
}

// RateLimitError represents an exhausted rate limit with its reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// IsNotFound checks if the error indicates an absent resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

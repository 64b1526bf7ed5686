package crossref

import (
	"errors"
	"fmt"
)

// Common errors returned by the CrossRef client.
var (
	// ErrNoResults indicates the works query returned no items.
	ErrNoResults = errors.New("no results from CrossRef")

	// ErrNoAuthorMatch indicates the top result's authors did not match
	// the requested author.
	ErrNoAuthorMatch = errors.New("no author matched")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("CrossRef rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with CrossRef")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from CrossRef")
)

// APIError represents a non-2xx response from the CrossRef API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("CrossRef API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNoMatch returns true if the error means the lookup completed but
// produced no acceptable DOI, as opposed to a transport or API failure.
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoResults) || errors.Is(err, ErrNoAuthorMatch)
}

// checkHTTPErrors maps a non-2xx status to an error value.
func checkHTTPErrors(statusCode int) error {
	if statusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, statusCode)
	}
	if statusCode < 200 || statusCode >= 300 {
		return &APIError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("HTTP %d", statusCode),
		}
	}
	return nil
}

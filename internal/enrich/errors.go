package enrich

import "fmt"

// RateLimitError reports that a provider refused the request due to quota.
// The chain treats it like any other failure, but it carries the provider
// name so operators can tell quota exhaustion from real outages.
type RateLimitError struct {
	Provider   string
	StatusCode int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("provider %s rate limited the request (status %d)", e.Provider, e.StatusCode)
}

package github

import (
	"fmt"
	"time"

	gh "github.com/google/go-github/v73/github"
)

// SearchParams holds the query-string parameters of a repository search.
// Zero values are omitted from the request.
type SearchParams struct {
	Query         string
	Sort          string
	Order         string
	Page          int
	PerPage       int
	CorrelationID string
}

// SearchResponse is the decoded body of GET /search/repositories
type SearchResponse struct {
	TotalCount        int
	IncompleteResults bool
	Repositories      []*gh.Repository
}

// APIError represents a failed call to the GitHub API
type APIError struct {
	StatusCode  int
	Message     string
	RateLimited bool
	RetryAfter  time.Duration
	Timeout     bool
	Cause       error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("github request failed: %s", e.Message)
	}
	return fmt.Sprintf("github API returned status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

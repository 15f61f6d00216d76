package reposearch

import "context"

// Fetcher performs a single upstream page fetch.
// Implementations should return *UpstreamError on failure; anything else is
// wrapped as an UpstreamError of kind other.
type Fetcher interface {
	Fetch(ctx context.Context, params FetchParams) (*Page, error)
}

// FetcherFunc adapts a plain function to Fetcher
type FetcherFunc func(ctx context.Context, params FetchParams) (*Page, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, params FetchParams) (*Page, error) {
	return f(ctx, params)
}

// SearchService is the backfilling search orchestrator
type SearchService interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

package reposearch

import (
	"context"
	"errors"

	gh "github.com/google/go-github/v73/github"

	"github.com/killallgit/reporadar-api/internal/services/github"
	"github.com/killallgit/reporadar-api/pkg/logger"
)

const upstreamSource = "GitHub API"

// RepositorySearcher is the part of the GitHub client the adapter needs
type RepositorySearcher interface {
	SearchRepositories(ctx context.Context, params github.SearchParams) (*github.SearchResponse, error)
}

// GitHubAdapter adapts the GitHub client to the Fetcher interface
type GitHubAdapter struct {
	client RepositorySearcher
}

// NewGitHubAdapter creates a new adapter for the GitHub client
func NewGitHubAdapter(client RepositorySearcher) *GitHubAdapter {
	return &GitHubAdapter{
		client: client,
	}
}

// Fetch fetches one upstream page
func (a *GitHubAdapter) Fetch(ctx context.Context, params FetchParams) (*Page, error) {
	resp, err := a.client.SearchRepositories(ctx, github.SearchParams{
		Query:         params.Query,
		Sort:          string(params.Sort),
		Order:         string(params.Order),
		Page:          params.Page,
		PerPage:       params.PerPage,
		CorrelationID: logger.CorrelationID(ctx),
	})
	if err != nil {
		return nil, a.convertError(err)
	}

	return &Page{
		Items:             a.convertRepositories(resp.Repositories),
		TotalCount:        resp.TotalCount,
		IncompleteResults: resp.IncompleteResults,
	}, nil
}

// convertError maps a GitHub client failure to an UpstreamError
func (a *GitHubAdapter) convertError(err error) error {
	var apiErr *github.APIError
	if !errors.As(err, &apiErr) {
		var upErr *UpstreamError
		if errors.As(asUpstream(err), &upErr) && upErr.Source == "" {
			upErr.Source = upstreamSource
		}
		return upErr
	}

	kind := KindFromStatus(apiErr.StatusCode)
	switch {
	case apiErr.Timeout:
		kind = KindTimeout
	case apiErr.RateLimited:
		kind = KindRateLimited
	}

	return &UpstreamError{
		Kind:       kind,
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Message,
		Source:     upstreamSource,
		Cause:      err,
	}
}

// convertRepositories converts go-github repositories to items, skipping nils
func (a *GitHubAdapter) convertRepositories(repos []*gh.Repository) []RepositoryItem {
	items := make([]RepositoryItem, 0, len(repos))
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		items = append(items, a.convertRepository(repo))
	}
	return items
}

func (a *GitHubAdapter) convertRepository(repo *gh.Repository) RepositoryItem {
	owner := repo.GetOwner()
	return RepositoryItem{
		ID:       repo.GetID(),
		Name:     repo.GetName(),
		FullName: repo.GetFullName(),
		Owner: Owner{
			Login:     owner.GetLogin(),
			ID:        owner.GetID(),
			AvatarURL: owner.GetAvatarURL(),
			HTMLURL:   owner.GetHTMLURL(),
		},
		HTMLURL:         repo.GetHTMLURL(),
		Description:     repo.GetDescription(),
		Fork:            repo.GetFork(),
		CreatedAt:       repo.GetCreatedAt().Time,
		UpdatedAt:       repo.GetUpdatedAt().Time,
		PushedAt:        repo.GetPushedAt().Time,
		StargazersCount: repo.GetStargazersCount(),
		WatchersCount:   repo.GetWatchersCount(),
		Language:        repo.GetLanguage(),
		ForksCount:      repo.GetForksCount(),
		OpenIssuesCount: repo.GetOpenIssuesCount(),
		DefaultBranch:   repo.GetDefaultBranch(),
	}
}

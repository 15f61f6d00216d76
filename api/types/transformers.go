package types

import (
	"time"

	"github.com/killallgit/reporadar-api/internal/models"
	"github.com/killallgit/reporadar-api/internal/services/reposearch"
)

// FromSearchResult transforms an orchestrator result to the response body
func FromSearchResult(r *reposearch.SearchResult) RepositorySearchResponse {
	if r == nil {
		return RepositorySearchResponse{Items: []RepositoryResponse{}}
	}
	return RepositorySearchResponse{
		TotalCount:        r.TotalCount,
		IncompleteResults: r.IncompleteResults,
		Items:             FromRepositoryItems(r.Items),
	}
}

// FromRepositoryItems transforms a list of repository items
func FromRepositoryItems(items []reposearch.RepositoryItem) []RepositoryResponse {
	result := make([]RepositoryResponse, 0, len(items))
	for _, item := range items {
		result = append(result, FromRepositoryItem(item))
	}
	return result
}

// FromRepositoryItem transforms a repository item. Empty optional fields become null.
func FromRepositoryItem(item reposearch.RepositoryItem) RepositoryResponse {
	return RepositoryResponse{
		ID:       item.ID,
		Name:     item.Name,
		FullName: item.FullName,
		Owner: OwnerResponse{
			Login:     item.Owner.Login,
			ID:        item.Owner.ID,
			AvatarURL: item.Owner.AvatarURL,
			HTMLURL:   item.Owner.HTMLURL,
		},
		HTMLURL:         item.HTMLURL,
		Description:     optionalString(item.Description),
		Fork:            item.Fork,
		CreatedAt:       optionalTime(item.CreatedAt),
		UpdatedAt:       optionalTime(item.UpdatedAt),
		PushedAt:        optionalTime(item.PushedAt),
		StargazersCount: item.StargazersCount,
		WatchersCount:   item.WatchersCount,
		Language:        optionalString(item.Language),
		ForksCount:      item.ForksCount,
		OpenIssuesCount: item.OpenIssuesCount,
		DefaultBranch:   item.DefaultBranch,
	}
}

// FromSearchLogs transforms audit records
func FromSearchLogs(entries []models.SearchLog) []SearchLogResponse {
	result := make([]SearchLogResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, SearchLogResponse{
			ID:            e.ID,
			CreatedAt:     e.CreatedAt,
			CorrelationID: e.CorrelationID,
			Query:         e.Query,
			Sort:          e.Sort,
			Order:         e.Order,
			Ignore:        e.Ignore,
			Page:          e.Page,
			PerPage:       e.PerPage,
			Outcome:       e.Outcome,
			ErrorKind:     e.ErrorKind,
			ItemCount:     e.ItemCount,
			TotalCount:    e.TotalCount,
			DurationMs:    e.DurationMs,
		})
	}
	return result
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}

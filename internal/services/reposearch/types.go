package reposearch

import (
	"fmt"
	"time"
)

// Sort is the upstream sort field. The zero value means "best match".
type Sort string

const (
	SortBestMatch        Sort = ""
	SortStars            Sort = "stars"
	SortForks            Sort = "forks"
	SortHelpWantedIssues Sort = "help-wanted-issues"
	SortUpdated          Sort = "updated"
)

// Sorts lists the accepted non-default sort fields
var Sorts = []Sort{SortStars, SortForks, SortHelpWantedIssues, SortUpdated}

// Valid reports whether s is empty or a known sort field
func (s Sort) Valid() bool {
	if s == SortBestMatch {
		return true
	}
	for _, known := range Sorts {
		if s == known {
			return true
		}
	}
	return false
}

// Order is the upstream sort direction. The zero value leaves it to upstream.
type Order string

const (
	OrderDefault Order = ""
	OrderAsc     Order = "asc"
	OrderDesc    Order = "desc"
)

// Valid reports whether o is empty, asc or desc
func (o Order) Valid() bool {
	return o == OrderDefault || o == OrderAsc || o == OrderDesc
}

// SearchRequest describes one repository search.
// Page and PerPage use 0 for "not set".
type SearchRequest struct {
	Query   string
	Sort    Sort
	Order   Order
	Ignore  string
	Page    int
	PerPage int
}

// StartPage returns the page the anchor call fetches
func (r SearchRequest) StartPage() int {
	if r.Page < 1 {
		return 1
	}
	return r.Page
}

// String is used in log lines
func (r SearchRequest) String() string {
	return fmt.Sprintf("query=%q sort=%q order=%q ignore=%q page=%d per_page=%d",
		r.Query, r.Sort, r.Order, r.Ignore, r.Page, r.PerPage)
}

// Owner is the account a repository belongs to
type Owner struct {
	Login     string
	ID        int64
	AvatarURL string
	HTMLURL   string
}

// RepositoryItem is one upstream search hit. Only Name is inspected here.
type RepositoryItem struct {
	ID              int64
	Name            string
	FullName        string
	Owner           Owner
	HTMLURL         string
	Description     string
	Fork            bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PushedAt        time.Time
	StargazersCount int
	WatchersCount   int
	Language        string
	ForksCount      int
	OpenIssuesCount int
	DefaultBranch   string
}

// SearchResult is what Search hands back to callers.
// TotalCount and IncompleteResults always come from the anchor page.
type SearchResult struct {
	TotalCount        int
	IncompleteResults bool
	Items             []RepositoryItem
}

// FetchParams is a single upstream page request
type FetchParams struct {
	Query   string
	Sort    Sort
	Order   Order
	Page    int
	PerPage int
}

// Page is a single upstream page response
type Page struct {
	Items             []RepositoryItem
	TotalCount        int
	IncompleteResults bool
}

func emptyResult() *SearchResult {
	return &SearchResult{
		TotalCount:        0,
		IncompleteResults: false,
		Items:             []RepositoryItem{},
	}
}

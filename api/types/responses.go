package types

import "time"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// OwnerResponse is the owner of a repository
type OwnerResponse struct {
	Login     string `json:"login" example:"nestjs"`
	ID        int64  `json:"id" example:"28507035"`
	AvatarURL string `json:"avatar_url" example:"https://avatars.githubusercontent.com/u/28507035?v=4"`
	HTMLURL   string `json:"html_url" example:"https://github.com/nestjs"`
}

// RepositoryResponse is one repository in a search result
type RepositoryResponse struct {
	ID              int64         `json:"id" example:"68220431"`
	Name            string        `json:"name" example:"nest"`
	FullName        string        `json:"full_name" example:"nestjs/nest"`
	Owner           OwnerResponse `json:"owner"`
	HTMLURL         string        `json:"html_url" example:"https://github.com/nestjs/nest"`
	Description     *string       `json:"description"`
	Fork            bool          `json:"fork"`
	CreatedAt       *time.Time    `json:"created_at"`
	UpdatedAt       *time.Time    `json:"updated_at"`
	PushedAt        *time.Time    `json:"pushed_at"`
	StargazersCount int           `json:"stargazers_count" example:"60000"`
	WatchersCount   int           `json:"watchers_count" example:"60000"`
	Language        *string       `json:"language" example:"TypeScript"`
	ForksCount      int           `json:"forks_count" example:"7000"`
	OpenIssuesCount int           `json:"open_issues_count" example:"40"`
	DefaultBranch   string        `json:"default_branch" example:"master"`
}

// RepositorySearchResponse mirrors the upstream search body
type RepositorySearchResponse struct {
	TotalCount        int                  `json:"total_count" example:"1234"`
	IncompleteResults bool                 `json:"incomplete_results" example:"false"`
	Items             []RepositoryResponse `json:"items"`
}

// SearchLogResponse is one audit record
type SearchLogResponse struct {
	ID            uint      `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Query         string    `json:"query"`
	Sort          string    `json:"sort,omitempty"`
	Order         string    `json:"order,omitempty"`
	Ignore        string    `json:"ignore,omitempty"`
	Page          int       `json:"page,omitempty"`
	PerPage       int       `json:"per_page,omitempty"`
	Outcome       string    `json:"outcome"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	ItemCount     int       `json:"item_count"`
	TotalCount    int       `json:"total_count"`
	DurationMs    int64     `json:"duration_ms"`
}

// SearchLogsResponse lists recent audit records
type SearchLogsResponse struct {
	BaseResponse
	Entries []SearchLogResponse `json:"entries"`
	Count   int                 `json:"count"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`   // Error code/type
	Details any    `json:"details,omitempty"` // Additional error details
}

// ValidationErrorResponse lists every rejected query parameter
type ValidationErrorResponse struct {
	Status  string   `json:"status" example:"error"`
	Message []string `json:"message" example:"query should not be empty"`
	Error   string   `json:"error" example:"Bad Request"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Database  map[string]any `json:"database"`
	Audit     bool           `json:"audit"`
}

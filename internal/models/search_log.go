package models

import "time"

// Search outcomes
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// SearchLog is one audit record of a handled repository search
type SearchLog struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
	CorrelationID string    `json:"correlation_id" gorm:"index"`
	Query         string    `json:"query" gorm:"not null"`
	Sort          string    `json:"sort,omitempty"`
	Order         string    `json:"order,omitempty"`
	Ignore        string    `json:"ignore,omitempty"`
	Page          int       `json:"page,omitempty"`
	PerPage       int       `json:"per_page,omitempty"`
	Outcome       string    `json:"outcome" gorm:"not null;index"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	ItemCount     int       `json:"item_count"`
	TotalCount    int       `json:"total_count"`
	DurationMs    int64     `json:"duration_ms"`
}

// TableName sets the table name for SearchLog
func (SearchLog) TableName() string {
	return "search_logs"
}

// Succeeded reports whether the search returned a result
func (l *SearchLog) Succeeded() bool {
	return l.Outcome == OutcomeOK
}

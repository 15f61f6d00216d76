package models

// All returns every model the service persists, in migration order
func All() []any {
	return []any{
		&SearchLog{},
	}
}

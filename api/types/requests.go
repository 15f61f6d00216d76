package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/killallgit/reporadar-api/internal/services/reposearch"
)

// SearchRepositoriesQuery holds the query string of a repository search
type SearchRepositoriesQuery struct {
	Query   string `form:"query" binding:"required" example:"nestjs"`
	Sort    string `form:"sort" binding:"omitempty,oneof=stars forks help-wanted-issues updated" example:"stars"`
	Order   string `form:"order" binding:"omitempty,oneof=asc desc" example:"desc"`
	Ignore  string `form:"ignore" example:"starter"`
	Page    *int   `form:"page" binding:"omitempty,min=1" example:"1"`
	PerPage *int   `form:"per_page" binding:"omitempty,min=1,max=100" example:"30"`
}

// ToSearchRequest converts the bound query to the orchestrator's request type
func (q SearchRepositoriesQuery) ToSearchRequest() reposearch.SearchRequest {
	req := reposearch.SearchRequest{
		Query:  q.Query,
		Sort:   reposearch.Sort(q.Sort),
		Order:  reposearch.Order(q.Order),
		Ignore: q.Ignore,
	}
	if q.Page != nil {
		req.Page = *q.Page
	}
	if q.PerPage != nil {
		req.PerPage = *q.PerPage
	}
	return req
}

// SearchLogsQuery holds the query string of the search log listing
type SearchLogsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500" example:"50"`
}

// ValidationMessages turns a binding error into one readable message per
// failed field, naming fields by their query parameter.
func ValidationMessages(err error, target any) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe, paramName(t, fe.StructField())))
	}
	return messages
}

func fieldMessage(fe validator.FieldError, name string) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", name)
	case "min":
		return fmt.Sprintf("%s must not be less than %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not be greater than %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", name, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// paramName returns the form tag of a struct field, falling back to its name
func paramName(t reflect.Type, field string) string {
	if t.Kind() != reflect.Struct {
		return field
	}
	f, ok := t.FieldByName(field)
	if !ok {
		return field
	}
	if tag := strings.Split(f.Tag.Get("form"), ",")[0]; tag != "" {
		return tag
	}
	return field
}

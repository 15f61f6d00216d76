package reposearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	ErrUpstream   = errors.New("upstream search failed")
	ErrProcessing = errors.New("failed to process repository search")
)

// UpstreamErrorKind classifies upstream failures. The set is closed.
type UpstreamErrorKind string

const (
	KindNotModified    UpstreamErrorKind = "not_modified"
	KindInvalidRequest UpstreamErrorKind = "invalid_request"
	KindRateLimited    UpstreamErrorKind = "rate_limited"
	KindUnavailable    UpstreamErrorKind = "unavailable"
	KindTimeout        UpstreamErrorKind = "timeout"
	KindOther          UpstreamErrorKind = "other"
)

// KindFromStatus maps an upstream HTTP status to a kind
func KindFromStatus(status int) UpstreamErrorKind {
	switch status {
	case http.StatusNotModified:
		return KindNotModified
	case http.StatusUnprocessableEntity:
		return KindInvalidRequest
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusServiceUnavailable:
		return KindUnavailable
	case http.StatusGatewayTimeout:
		return KindTimeout
	default:
		return KindOther
	}
}

// UpstreamError represents a failure of the upstream search API
type UpstreamError struct {
	Kind       UpstreamErrorKind
	StatusCode int
	Message    string
	// Source names the upstream in messages; empty means "upstream"
	Source string
	Cause  error
}

func (e *UpstreamError) Error() string {
	source := e.Source
	if source == "" {
		source = "upstream"
	}

	switch e.Kind {
	case KindNotModified:
		return source + ": Not Modified"
	case KindInvalidRequest:
		return fmt.Sprintf("%s: Invalid Request (%d)", source, http.StatusUnprocessableEntity)
	case KindUnavailable:
		return fmt.Sprintf("%s: Service Unavailable (%d)", source, http.StatusServiceUnavailable)
	case KindRateLimited:
		return fmt.Sprintf("%s: Rate Limited: %s", source, e.Message)
	case KindTimeout:
		return fmt.Sprintf("%s: Timeout: %s", source, e.Message)
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("failed to fetch repositories from %s: %s", source, e.Message)
	}
	return fmt.Sprintf("%s error: %s", source, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// ProcessingError wraps an unexpected failure in local filtering or accumulation
type ProcessingError struct {
	Cause error
}

func (e *ProcessingError) Error() string {
	if e.Cause == nil {
		return ErrProcessing.Error()
	}
	return fmt.Sprintf("%s: %v", ErrProcessing.Error(), e.Cause)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

func (e *ProcessingError) Is(target error) bool {
	return target == ErrProcessing
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(kind UpstreamErrorKind, statusCode int, message string, cause error) error {
	return &UpstreamError{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(cause error) error {
	return &ProcessingError{Cause: cause}
}

// IsUpstream checks if an error is an upstream error
func IsUpstream(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr)
}

// IsProcessing checks if an error is a processing error
func IsProcessing(err error) bool {
	var procErr *ProcessingError
	return errors.As(err, &procErr)
}

// UpstreamKind returns the kind of an upstream error, or "" for other errors
func UpstreamKind(err error) UpstreamErrorKind {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Kind
	}
	return ""
}

// asUpstream makes sure a fetcher failure surfaces as *UpstreamError
func asUpstream(err error) error {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &UpstreamError{Kind: KindTimeout, Message: err.Error(), Cause: err}
	}
	return &UpstreamError{Kind: KindOther, Message: err.Error(), Cause: err}
}

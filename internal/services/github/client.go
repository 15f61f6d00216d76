// Package github wraps the GitHub REST search API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v73/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/killallgit/reporadar-api/pkg/logger"
)

const (
	DefaultBaseURL   = "https://api.github.com/"
	DefaultUserAgent = "RepoRadarAPI/1.0"
	DefaultTimeout   = 10 * time.Second
)

// Config holds configuration for the GitHub client
type Config struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Client handles communication with the GitHub search API
type Client struct {
	gh     *gh.Client
	logger *zap.Logger
}

// NewClient creates a new GitHub API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", cfg.BaseURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &correlationTransport{},
	}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient.Transport = &oauth2.Transport{
			Source: ts,
			Base:   httpClient.Transport,
		}
	}

	client := gh.NewClient(httpClient)
	client.BaseURL = baseURL
	client.UserAgent = cfg.UserAgent

	return &Client{
		gh:     client,
		logger: cfg.Logger.Named("github"),
	}, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.gh.BaseURL.String()
}

// SearchRepositories fetches one page of GET /search/repositories
func (c *Client) SearchRepositories(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	if params.Query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	ctx = logger.ContextWithCorrelationID(ctx, params.CorrelationID)

	opts := &gh.SearchOptions{
		Sort:  params.Sort,
		Order: params.Order,
		ListOptions: gh.ListOptions{
			Page:    params.Page,
			PerPage: params.PerPage,
		},
	}

	start := time.Now()
	fields := []zap.Field{
		logger.CorrelationField(ctx),
		zap.String("q", params.Query),
		zap.String("sort", params.Sort),
		zap.String("order", params.Order),
		zap.Int("page", params.Page),
		zap.Int("per_page", params.PerPage),
	}
	c.logger.Debug("[external-api][req] GET search/repositories", fields...)

	result, resp, err := c.gh.Search.Repositories(ctx, params.Query, opts)
	duration := time.Since(start)
	if err != nil {
		apiErr := classify(ctx, resp, err)
		c.logger.Error("[external-api][err] GET search/repositories",
			append(fields,
				zap.Int("status", apiErr.StatusCode),
				zap.Duration("duration", duration),
				zap.Error(err))...)
		return nil, apiErr
	}

	c.logger.Debug("[external-api][res] GET search/repositories",
		append(fields,
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", duration),
			zap.Int("items", len(result.Repositories)))...)

	return &SearchResponse{
		TotalCount:        result.GetTotal(),
		IncompleteResults: result.GetIncompleteResults(),
		Repositories:      result.Repositories,
	}, nil
}

// classify turns a go-github failure into an APIError
func classify(ctx context.Context, resp *gh.Response, err error) *APIError {
	apiErr := &APIError{Message: err.Error(), Cause: err}

	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var errResp *gh.ErrorResponse
	var netErr net.Error

	switch {
	case errors.As(err, &rateErr):
		apiErr.RateLimited = true
		apiErr.Message = rateErr.Message
		if rateErr.Response != nil {
			apiErr.StatusCode = rateErr.Response.StatusCode
		}
		if reset := rateErr.Rate.Reset.Time; !reset.IsZero() {
			apiErr.RetryAfter = time.Until(reset)
		}
	case errors.As(err, &abuseErr):
		apiErr.RateLimited = true
		apiErr.Message = abuseErr.Message
		if abuseErr.Response != nil {
			apiErr.StatusCode = abuseErr.Response.StatusCode
		}
		if abuseErr.RetryAfter != nil {
			apiErr.RetryAfter = *abuseErr.RetryAfter
		}
	case errors.As(err, &errResp):
		apiErr.Message = errResp.Message
		if errResp.Response != nil {
			apiErr.StatusCode = errResp.Response.StatusCode
		}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		apiErr.Timeout = true
	case errors.As(err, &netErr) && netErr.Timeout():
		apiErr.Timeout = true
	}

	if apiErr.StatusCode == 0 && resp != nil && resp.Response != nil {
		apiErr.StatusCode = resp.StatusCode
	}
	if apiErr.Message == "" && apiErr.StatusCode != 0 {
		apiErr.Message = http.StatusText(apiErr.StatusCode)
	}
	if ctx.Err() != nil {
		apiErr.Timeout = true
	}

	return apiErr
}

// correlationTransport forwards the request correlation id upstream
type correlationTransport struct {
	base http.RoundTripper
}

func (t *correlationTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	id := logger.CorrelationID(req.Context())
	if id == "" {
		return base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set(logger.CorrelationHeader, id)
	return base.RoundTrip(clone)
}

package reposearch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var errNilPage = errors.New("upstream returned no page and no error")

// Service implements SearchService on top of a single upstream Fetcher.
// It holds no per-search state and is safe for concurrent use.
type Service struct {
	fetcher          Fetcher
	logger           *zap.Logger
	maxBackfillPages int
}

// ServiceOption is a functional option for configuring the service
type ServiceOption func(*Service)

// WithMaxBackfillPages caps the number of extra upstream pages one search
// may fetch. Zero or less means no cap.
func WithMaxBackfillPages(max int) ServiceOption {
	return func(s *Service) {
		if max < 0 {
			max = 0
		}
		s.maxBackfillPages = max
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new search service
func NewService(fetcher Fetcher, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher: fetcher,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Search runs one repository search, filtering by req.Ignore and backfilling
// from later upstream pages when filtering leaves the page short.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if sameTerm(req.Query, req.Ignore) {
		s.logger.Debug("ignore term equals query, skipping upstream", zap.String("query", req.Query))
		return emptyResult(), nil
	}

	page := req.StartPage()
	anchor, err := s.fetch(ctx, req, page)
	if err != nil {
		return nil, err
	}

	if len(anchor.Items) == 0 {
		return &SearchResult{
			TotalCount:        anchor.TotalCount,
			IncompleteResults: anchor.IncompleteResults,
			Items:             []RepositoryItem{},
		}, nil
	}

	filter := newNameFilter(req.Ignore)
	if !filter.active() {
		return &SearchResult{
			TotalCount:        anchor.TotalCount,
			IncompleteResults: anchor.IncompleteResults,
			Items:             anchor.Items,
		}, nil
	}

	items, err := s.filter(filter, nil, anchor.Items)
	if err != nil {
		return nil, err
	}

	if req.PerPage > 0 && len(items) < req.PerPage {
		items, err = s.backfill(ctx, req, filter, page, anchor.TotalCount, items)
		if err != nil {
			return nil, err
		}
	}

	return &SearchResult{
		TotalCount:        anchor.TotalCount,
		IncompleteResults: anchor.IncompleteResults,
		Items:             items,
	}, nil
}

// backfill fetches the pages after startPage until acc holds at least
// req.PerPage items or upstream runs dry. The surplus of the last page is kept.
func (s *Service) backfill(ctx context.Context, req SearchRequest, filter nameFilter, startPage, totalCount int, acc []RepositoryItem) ([]RepositoryItem, error) {
	limit := s.backfillLimit(totalCount, req.PerPage, startPage)

	for step := 1; step <= limit; step++ {
		if len(acc) >= req.PerPage {
			return acc, nil
		}
		// filter always hands back a non-nil slice, even when it kept nothing
		if acc == nil {
			return acc, nil
		}

		nextPage := startPage + step
		batch, err := s.fetch(ctx, req, nextPage)
		if err != nil {
			return nil, err
		}

		if len(batch.Items) == 0 {
			s.logger.Debug("upstream exhausted during backfill",
				zap.Int("page", nextPage),
				zap.Int("collected", len(acc)))
			return acc, nil
		}

		acc, err = s.filter(filter, acc, batch.Items)
		if err != nil {
			return nil, err
		}

		s.logger.Debug("backfilled page",
			zap.Int("page", nextPage),
			zap.Int("fetched", len(batch.Items)),
			zap.Int("collected", len(acc)),
			zap.Int("per_page", req.PerPage))
	}

	if len(acc) < req.PerPage {
		s.logger.Warn("backfill stopped at page limit",
			zap.String("query", req.Query),
			zap.Int("limit", limit),
			zap.Int("collected", len(acc)),
			zap.Int("per_page", req.PerPage))
	}

	return acc, nil
}

// backfillLimit bounds the loop by the upstream pages the anchor total
// implies after startPage, and by the optional cap.
func (s *Service) backfillLimit(totalCount, perPage, startPage int) int {
	pages := 1
	if totalCount > 0 && perPage > 0 {
		pages = (totalCount+perPage-1)/perPage - (startPage - 1)
		if pages < 1 {
			pages = 1
		}
	}
	if s.maxBackfillPages > 0 && pages > s.maxBackfillPages {
		pages = s.maxBackfillPages
	}
	return pages
}

func (s *Service) fetch(ctx context.Context, req SearchRequest, page int) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, asUpstream(err)
	}

	params := FetchParams{
		Query:   req.Query,
		Sort:    req.Sort,
		Order:   req.Order,
		Page:    page,
		PerPage: req.PerPage,
	}

	result, err := s.fetcher.Fetch(ctx, params)
	if err != nil {
		s.logger.Error("upstream fetch failed",
			zap.String("query", req.Query),
			zap.Int("page", page),
			zap.Error(err))
		return nil, asUpstream(err)
	}
	if result == nil {
		return nil, NewProcessingError(errNilPage)
	}

	return result, nil
}

// filter appends the survivors of batch to acc, turning a panic into a
// ProcessingError.
func (s *Service) filter(f nameFilter, acc, batch []RepositoryItem) (out []RepositoryItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while filtering results", zap.Any("panic", r))
			out = nil
			err = NewProcessingError(fmt.Errorf("panic: %v", r))
		}
	}()

	kept := f.apply(batch)
	if acc == nil {
		return kept, nil
	}
	return append(acc, kept...), nil
}

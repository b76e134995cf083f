package movie

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

type Service interface {
	Search(ctx context.Context, query string, page int) (Page, error)
	RecentSearches(ctx context.Context, limit int) ([]string, error)
}

// Repository is the movie catalog. Search returns ErrNotFound when the
// catalog has no match for the query.
type Repository interface {
	Search(ctx context.Context, query string, page int) (Page, error)
}

// SearchLog records the searches users run.
type SearchLog interface {
	Record(ctx context.Context, entry LogEntry) error
	Recent(ctx context.Context, limit int) ([]string, error)
}

type LogEntry struct {
	Query        string
	Page         int
	TotalResults int
	ResultCount  int
	Found        bool
	Duration     time.Duration
}

type Usecase struct {
	r   Repository
	log SearchLog
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// WithSearchLog enables search history. A nil log disables it.
func (uc *Usecase) WithSearchLog(l SearchLog) *Usecase {
	uc.log = l
	return uc
}

func (uc *Usecase) Search(ctx context.Context, query string, page int) (Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Page{}, ErrInvalidQuery
	}
	if page < 1 {
		page = 1
	}

	start := time.Now()
	result, err := uc.r.Search(ctx, query, page)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Page{}, err
	}

	result.Movies = Dedup(result.Movies)
	result.Number = page
	uc.record(ctx, LogEntry{
		Query:        query,
		Page:         page,
		TotalResults: result.TotalResults,
		ResultCount:  len(result.Movies),
		Found:        err == nil,
		Duration:     time.Since(start),
	})

	if err != nil {
		return Page{}, err
	}
	return result, nil
}

func (uc *Usecase) RecentSearches(ctx context.Context, limit int) ([]string, error) {
	if uc.log == nil {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	return uc.log.Recent(ctx, limit)
}

func (uc *Usecase) record(ctx context.Context, entry LogEntry) {
	if uc.log == nil {
		return
	}
	if err := uc.log.Record(ctx, entry); err != nil {
		slog.WarnContext(ctx, "cannot record search", "query", entry.Query, "error", err)
	}
}

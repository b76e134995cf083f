package movie

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// Searcher is the part of Service a Controller needs.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (Page, error)
}

// Controller owns the state of one search session: the query, the visible
// results, the status of the last request and the pagination position.
//
// Every dispatched request gets a token. A response is applied only if its
// token is still the latest one, so a slow response can never overwrite the
// result of a search started after it.
type Controller struct {
	svc  Searcher
	mode Mode

	mu    sync.Mutex
	state State
	token uint64
}

func NewController(svc Searcher, mode Mode) *Controller {
	if mode != ModeLoadMore {
		mode = ModePaged
	}
	return &Controller{
		svc:   svc,
		mode:  mode,
		state: State{Movies: []Summary{}, CurrentPage: 1},
	}
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Search runs query at page and returns the resulting state. An empty query
// is a no-op. Errors never escape: they are turned into the state's Message.
func (c *Controller) Search(ctx context.Context, query string, page int) State {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.State()
	}
	if page < 1 {
		page = 1
	}

	token := c.dispatch(query)
	result, err := c.svc.Search(ctx, query, page)
	return c.resolve(token, query, page, result, err)
}

// Next moves to the following page. It does nothing when there is none.
func (c *Controller) Next(ctx context.Context) State {
	s := c.State()
	if !s.HasNext() {
		return s
	}
	return c.Search(ctx, s.Query, s.CurrentPage+1)
}

// Prev moves to the previous page. It does nothing on the first page.
func (c *Controller) Prev(ctx context.Context) State {
	s := c.State()
	if !s.HasPrev() {
		return s
	}
	return c.Search(ctx, s.Query, s.CurrentPage-1)
}

// LoadMore fetches the next page. In ModeLoadMore the results are appended.
func (c *Controller) LoadMore(ctx context.Context) State {
	return c.Next(ctx)
}

func (c *Controller) dispatch(query string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token++
	if query != c.state.Query {
		c.state.Movies = []Summary{}
		c.state.CurrentPage = 1
		c.state.TotalResults = 0
	}
	c.state.Query = query
	c.state.Status = StatusLoading
	c.state.Message = ""
	return c.token
}

func (c *Controller) resolve(token uint64, query string, page int, result Page, err error) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		slog.Debug("discarding stale search response", "query", query, "page", page)
		return c.state.clone()
	}

	switch {
	case err == nil:
		movies := Dedup(result.Movies)
		if c.mode == ModeLoadMore && page > 1 {
			movies = appendUnique(c.state.Movies, movies)
		}
		c.state.Movies = movies
		c.state.TotalResults = max(result.TotalResults, 0)
		c.state.CurrentPage = page
		c.state.Status = StatusSuccess
	case errors.Is(err, ErrNotFound):
		c.state.Movies = []Summary{}
		c.state.TotalResults = 0
		c.state.CurrentPage = page
		c.state.Status = StatusFailed
		c.state.Message = ErrNotFound.Message
	default:
		slog.Error("search failed", "query", query, "page", page, "error", err)
		c.state.Status = StatusFailed
		c.state.Message = ErrUnavailable.Message
	}
	return c.state.clone()
}

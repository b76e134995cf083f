package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviesearch/movie"
	"moviesearch/pkg/metrics"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://www.omdbapi.com"

type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 = unlimited
	CacheSize  int     // 0 disables the page cache
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

// Client searches the OMDb catalog. It implements movie.Repository.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	group   singleflight.Group
	cache   *expirable.LRU[string, movie.Page]
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  opts.APIKey,
		http:    client,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, 1),
	}
	if opts.CacheSize > 0 {
		c.cache = expirable.NewLRU[string, movie.Page](opts.CacheSize, nil, opts.CacheTTL)
	}
	return c
}

// searchResponse is the body of a "?s=" request. Search is absent when
// nothing matched, e.g. {"Response":"False","Error":"Movie not found!"}.
type searchResponse struct {
	Search       []searchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error"`
}

type searchItem struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
}

func (c *Client) Search(ctx context.Context, query string, page int) (movie.Page, error) {
	if page < 1 {
		page = 1
	}
	key := cacheKey(query, page)

	if c.cache != nil {
		if p, ok := c.cache.Get(key); ok {
			metrics.UpstreamCacheHits.Inc()
			return p, nil
		}
	}

	// The shared request outlives any single caller; each caller only
	// stops waiting for it when its own context ends.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		p, err := c.fetch(fetchCtx, query, page)
		if err == nil && c.cache != nil {
			c.cache.Add(key, p)
		}
		return p, err
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return movie.Page{}, fmt.Errorf("omdb: search abandoned: %w", ctx.Err())
	}
	if res.Shared {
		metrics.UpstreamSharedRequests.Inc()
	}
	if res.Err != nil {
		return movie.Page{}, res.Err
	}

	return res.Val.(movie.Page), nil
}

func (c *Client) fetch(ctx context.Context, query string, page int) (movie.Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("rate_limited").Inc()
		return movie.Page{}, fmt.Errorf("omdb: rate limit: %w", err)
	}

	start := time.Now()
	body, err := c.get(ctx, query, page)
	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		return movie.Page{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		return movie.Page{}, fmt.Errorf("omdb: decode response: %w", err)
	}

	if len(resp.Search) == 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues("not_found").Inc()
		slog.DebugContext(ctx, "omdb: no results", "query", query, "page", page, "reason", resp.Error)
		return movie.Page{}, movie.ErrNotFound
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("ok").Inc()
	return toPage(resp, page), nil
}

func (c *Client) get(ctx context.Context, query string, page int) ([]byte, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("apikey", c.apiKey)
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("omdb: create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("omdb: unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("omdb: read response: %w", err)
	}
	return body, nil
}

func toPage(resp searchResponse, page int) movie.Page {
	movies := make([]movie.Summary, len(resp.Search))
	for i, item := range resp.Search {
		movies[i] = movie.Summary{
			ID:        item.ImdbID,
			Title:     item.Title,
			Year:      item.Year,
			PosterURL: item.Poster,
		}
	}

	// totalResults is a string; anything unparsable counts as zero
	total, err := strconv.Atoi(strings.TrimSpace(resp.TotalResults))
	if err != nil || total < 0 {
		total = 0
	}

	return movie.Page{
		Movies:       movies,
		TotalResults: total,
		Number:       page,
	}
}

func cacheKey(query string, page int) string {
	return strings.ToLower(query) + "\x00" + strconv.Itoa(page)
}

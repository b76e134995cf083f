//nolint:unused
package httpserver_test

import (
	"context"
	"encoding/json"
	"moviesearch/httpserver"
	"moviesearch/movie"
	"moviesearch/pkg/config"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SessionCacheSize = 8
	return cfg
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) Search(ctx context.Context, query string, page int) (movie.Page, error) {
	args := m.Called(ctx, query, page)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) RecentSearches(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]string), args.Error(1)
}

func newMovieServer(svc movie.Service, mode movie.Mode) *httpserver.Server {
	cfg := testConfig()
	cfg.PaginationMode = string(mode)
	server := httpserver.Default(cfg)
	server.MovieService = svc
	return server
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

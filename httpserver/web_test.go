// nolint: funlen
package httpserver_test

import (
	"errors"
	"moviesearch/httpserver"
	"moviesearch/movie"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func batmanPage(number int, ids ...string) movie.Page {
	movies := make([]movie.Summary, len(ids))
	for i, id := range ids {
		movies[i] = movie.Summary{ID: id, Title: "Batman " + id, Year: "2005", PosterURL: movie.PosterUnavailable}
	}
	return movie.Page{Movies: movies, TotalResults: 25, Number: number}
}

func getWithSession(server *httpserver.Server, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	svc := new(MockMovieService)
	server := newMovieServer(svc, movie.ModePaged)
	svc.On("RecentSearches", mock.Anything, 5).Return([]string{"alien"}, nil)

	rec := getWithSession(server, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `placeholder="Search Movies..."`)
	assert.Contains(t, body, `/search?q=alien`)
	assert.NotContains(t, body, `class="error"`)
	assert.NotEmpty(t, rec.Result().Cookies(), "a session cookie should be issued")
}

func TestSearchPage_Paged(t *testing.T) {
	svc := new(MockMovieService)
	server := newMovieServer(svc, movie.ModePaged)
	svc.On("RecentSearches", mock.Anything, 5).Return([]string{}, nil)
	svc.On("Search", mock.Anything, "batman", 1).Return(batmanPage(1, "tt1", "tt2"), nil).Once()
	svc.On("Search", mock.Anything, "batman", 2).Return(batmanPage(2, "tt3"), nil).Once()

	first := getWithSession(server, "/search?q=batman", nil)
	require.Equal(t, http.StatusOK, first.Code)
	body := first.Body.String()
	assert.Contains(t, body, "Batman tt1")
	assert.Contains(t, body, movie.PlaceholderPoster)
	assert.Contains(t, body, "Page 1 of 3")
	assert.Contains(t, body, `<span class="btn">Prev</span>`)
	assert.Contains(t, body, `href="/search?page=2&amp;q=batman"`)
	assert.Contains(t, body, `document.querySelectorAll(".pager a")`, "page links show the spinner")

	second := getWithSession(server, "/search?q=batman&page=2", first.Result().Cookies())
	require.Equal(t, http.StatusOK, second.Code)
	body = second.Body.String()
	assert.Contains(t, body, "Batman tt3")
	assert.NotContains(t, body, "Batman tt1", "paged mode replaces the list")
	assert.Contains(t, body, "Page 2 of 3")
	assert.Contains(t, body, `href="/search?page=1&amp;q=batman"`)
	svc.AssertExpectations(t)
}

func TestSearchPage_MalformedPageFallsBackToFirst(t *testing.T) {
	svc := new(MockMovieService)
	server := newMovieServer(svc, movie.ModePaged)
	svc.On("RecentSearches", mock.Anything, 5).Return([]string{}, nil)
	svc.On("Search", mock.Anything, "batman", 1).Return(batmanPage(1, "tt1"), nil).Once()

	rec := getWithSession(server, "/search?q=batman&page=abc", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Batman tt1")
	assert.Contains(t, body, "Page 1 of 3")
	assert.NotContains(t, body, `class="error"`)
	svc.AssertExpectations(t)
}

func TestSearchPage_LoadMore(t *testing.T) {
	svc := new(MockMovieService)
	server := newMovieServer(svc, movie.ModeLoadMore)
	svc.On("RecentSearches", mock.Anything, 5).Return([]string{}, nil)
	svc.On("Search", mock.Anything, "batman", 1).Return(batmanPage(1, "tt1", "tt2"), nil).Once()
	svc.On("Search", mock.Anything, "batman", 2).Return(batmanPage(2, "tt2", "tt3"), nil).Once()

	first := getWithSession(server, "/search?q=batman", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), ">Load more</a>")

	second := getWithSession(server, "/search?q=batman&page=2", first.Result().Cookies())
	require.Equal(t, http.StatusOK, second.Code)
	body := second.Body.String()
	assert.Contains(t, body, "Batman tt1")
	assert.Contains(t, body, "Batman tt3")
	assert.Equal(t, 1, strings.Count(body, "<h3>Batman tt2</h3>"))
	svc.AssertExpectations(t)
}

func TestSearchPage_Errors(t *testing.T) {
	t.Run("not found shows message", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc, movie.ModePaged)
		svc.On("RecentSearches", mock.Anything, 5).Return([]string{}, nil)
		svc.On("Search", mock.Anything, "zzzxq", 1).Return(movie.Page{}, movie.ErrNotFound).Once()

		rec := getWithSession(server, "/search?q=zzzxq", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No movies found. Try another title!")
	})

	t.Run("upstream failure shows generic message", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc, movie.ModePaged)
		svc.On("RecentSearches", mock.Anything, 5).Return([]string{}, nil)
		svc.On("Search", mock.Anything, "batman", 1).Return(movie.Page{}, errors.New("connection refused")).Once()

		rec := getWithSession(server, "/search?q=batman", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong. Please try again later.")
	})

	t.Run("empty query renders without searching", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(svc, movie.ModePaged)
		svc.On("RecentSearches", mock.Anything, 5).Return([]string{}, nil)

		rec := getWithSession(server, "/search?q=", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})
}

package httpserver

import (
	"errors"
	"moviesearch/errs"
	"moviesearch/movie"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies/search", s.handleSearchMovies)
	g.GET("/movies/recent", s.handleRecentSearches)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Search the OMDb catalog by title, one page of 10 results at a time
// @Tags movies
// @Produce json
// @Param q query string true "Movie title"
// @Param page query int false "Page number (1-100), default 1"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return movie.ErrInvalidQuery
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	page, err := s.MovieService.Search(c.Request().Context(), req.Query, req.PageOrFirst())
	if err != nil {
		var appErr *errs.Error
		if !errors.As(err, &appErr) {
			c.Logger().Errorf("search %q failed: %v", req.Query, err)
			return movie.ErrUnavailable
		}
		return err
	}

	meta := map[string]int{"total_pages": movie.TotalPages(page.TotalResults)}
	return RespondPagedList(c, http.StatusOK, page.Movies, meta, page.Number, movie.PageSize, page.TotalResults)
}

// handleRecentSearches godoc
// @Summary Recent Searches
// @Description Latest distinct queries that returned results
// @Tags movies
// @Produce json
// @Param limit query int false "Max queries (1-50), default 10"
// @Success 200 {object} APIResponse
// @Router /api/movies/recent [get]
func (s *Server) handleRecentSearches(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req RecentRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid limit")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	queries, err := s.MovieService.RecentSearches(c.Request().Context(), req.Limit)
	if err != nil {
		return err
	}

	return RespondList(c, http.StatusOK, queries)
}

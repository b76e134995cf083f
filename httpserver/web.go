package httpserver

import (
	"embed"
	"html/template"
	"io"
	"log/slog"
	"moviesearch/movie"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() *templateRenderer {
	return &templateRenderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// searchPage is the data behind templates/index.html.
type searchPage struct {
	State    movie.State
	LoadMore bool
	Recent   []string
	PrevURL  string
	NextURL  string
}

func (s *Server) RegisterWebRoutes() {
	s.Router.GET("/", s.handleIndex)
	s.Router.GET("/search", s.handleSearchPage)
}

func (s *Server) handleIndex(c echo.Context) error {
	if s.MovieService == nil {
		return s.renderSearch(c, movie.State{Movies: []movie.Summary{}, CurrentPage: 1})
	}
	ctrl := s.Sessions.Controller(c, s.MovieService)
	return s.renderSearch(c, ctrl.State())
}

// handleSearchPage runs a search for the session and renders the result.
// Failures are shown in the page, never as an error response.
func (s *Server) handleSearchPage(c echo.Context) error {
	if s.MovieService == nil {
		return s.renderSearch(c, movie.State{Movies: []movie.Summary{}, CurrentPage: 1})
	}

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		// a malformed page falls back to the first page of the query
		slog.DebugContext(c.Request().Context(), "invalid search parameters", "error", err)
		req = SearchRequest{Query: c.QueryParam("q")}
	}

	ctrl := s.Sessions.Controller(c, s.MovieService)
	state := ctrl.Search(c.Request().Context(), req.Query, req.PageOrFirst())
	return s.renderSearch(c, state)
}

func (s *Server) renderSearch(c echo.Context, state movie.State) error {
	page := searchPage{
		State:    state,
		LoadMore: s.Sessions.Mode() == movie.ModeLoadMore,
	}
	if state.HasPrev() {
		page.PrevURL = searchURL(state.Query, state.CurrentPage-1)
	}
	if state.HasNext() {
		page.NextURL = searchURL(state.Query, state.CurrentPage+1)
	}

	if s.MovieService != nil {
		recent, err := s.MovieService.RecentSearches(c.Request().Context(), 5)
		if err != nil {
			slog.WarnContext(c.Request().Context(), "cannot load recent searches", "error", err)
		}
		page.Recent = recent
	}

	return c.Render(http.StatusOK, "index.html", page)
}

func searchURL(query string, page int) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("page", strconv.Itoa(page))
	return "/search?" + v.Encode()
}

package httpserver

import (
	"moviesearch/movie"
	"moviesearch/pkg/metrics"
	"net/http"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
)

const (
	sessionCookie     = "moviesearch_session"
	sessionCookieTTL  = 24 * time.Hour
	defaultSessionCap = 1024
)

// SessionStore keeps one movie.Controller per browser session. The least
// recently used sessions are dropped once the store is full.
type SessionStore struct {
	mode        movie.Mode
	controllers *lru.Cache[string, *movie.Controller]
}

func NewSessionStore(size int, mode movie.Mode) *SessionStore {
	if size <= 0 {
		size = defaultSessionCap
	}
	cache, _ := lru.NewWithEvict[string, *movie.Controller](size, func(string, *movie.Controller) {
		metrics.ActiveSessions.Dec()
	})
	return &SessionStore{mode: mode, controllers: cache}
}

func (s *SessionStore) Mode() movie.Mode {
	return s.mode
}

func (s *SessionStore) Len() int {
	return s.controllers.Len()
}

// Controller returns the controller for the request's session, starting a
// new session (and setting its cookie) when there is none.
func (s *SessionStore) Controller(c echo.Context, svc movie.Searcher) *movie.Controller {
	id := ""
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		id = cookie.Value
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		c.SetCookie(&http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(sessionCookieTTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if ctrl, ok := s.controllers.Get(id); ok {
		return ctrl
	}

	ctrl := movie.NewController(svc, s.mode)
	if ok, _ := s.controllers.ContainsOrAdd(id, ctrl); ok {
		if existing, found := s.controllers.Get(id); found {
			return existing
		}
		return ctrl
	}
	metrics.ActiveSessions.Inc()
	return ctrl
}

package movie

import "moviesearch/errs"

// PageSize is the number of results the upstream catalog returns per page.
const PageSize = 10

const (
	// PosterUnavailable is the poster value the catalog uses when it has no image.
	PosterUnavailable = "N/A"

	// PlaceholderPoster is shown instead of a missing poster.
	PlaceholderPoster = "https://via.placeholder.com/200x300"
)

var (
	ErrInvalidQuery = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrNotFound     = errs.Errorf(errs.ENOTFOUND, "No movies found. Try another title!")
	ErrUnavailable  = errs.Errorf(errs.EUNAVAILABLE, "Something went wrong. Please try again later.")
)

// Summary is a single search hit. It is never modified after it is received.
type Summary struct {
	ID        string `json:"imdb_id"`
	Title     string `json:"title"`
	Year      string `json:"year"`
	PosterURL string `json:"poster_url"`
}

// Poster returns the image to display for the movie.
func (s Summary) Poster() string {
	if s.PosterURL == "" || s.PosterURL == PosterUnavailable {
		return PlaceholderPoster
	}
	return s.PosterURL
}

// Page is one page of search results as returned by a Repository.
type Page struct {
	Movies       []Summary `json:"movies"`
	TotalResults int       `json:"total_results"`
	Number       int       `json:"page"`
}

// Dedup drops movies whose ID was already seen, keeping the first occurrence
// and the original order.
func Dedup(movies []Summary) []Summary {
	return appendUnique(nil, movies)
}

// appendUnique appends the movies from src whose ID is not yet in dst.
func appendUnique(dst, src []Summary) []Summary {
	seen := make(map[string]struct{}, len(dst)+len(src))
	for _, m := range dst {
		seen[m.ID] = struct{}{}
	}

	out := make([]Summary, len(dst), len(dst)+len(src))
	copy(out, dst)
	for _, m := range src {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

// TotalPages returns how many pages are needed to show total results.
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

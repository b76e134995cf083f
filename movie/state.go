package movie

import "slices"

// Status is the lifecycle of the last search a controller dispatched.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Mode selects what happens to the result list when the page changes.
type Mode string

const (
	// ModePaged replaces the list on every page (Prev/Next controls).
	ModePaged Mode = "paged"
	// ModeLoadMore appends later pages to the list ("Load more" control).
	ModeLoadMore Mode = "loadmore"
)

// ParseMode returns the mode for s, falling back to ModePaged.
func ParseMode(s string) Mode {
	if Mode(s) == ModeLoadMore {
		return ModeLoadMore
	}
	return ModePaged
}

// State is a snapshot of a search session. CurrentPage is always at least 1.
type State struct {
	Query        string    `json:"query"`
	Movies       []Summary `json:"movies"`
	Status       Status    `json:"-"`
	Message      string    `json:"message,omitempty"`
	CurrentPage  int       `json:"current_page"`
	TotalResults int       `json:"total_results"`
}

func (s State) IsLoading() bool {
	return s.Status == StatusLoading
}

func (s State) TotalPages() int {
	return TotalPages(s.TotalResults)
}

// ShowPager reports whether page navigation controls are rendered at all.
func (s State) ShowPager() bool {
	return s.TotalPages() > 1
}

func (s State) HasPrev() bool {
	return s.ShowPager() && !s.IsLoading() && s.CurrentPage > 1
}

func (s State) HasNext() bool {
	return s.ShowPager() && !s.IsLoading() && s.CurrentPage < s.TotalPages()
}

func (s State) clone() State {
	s.Movies = slices.Clone(s.Movies)
	return s
}

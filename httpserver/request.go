package httpserver

type SearchRequest struct {
	Query string `query:"q" json:"q" validate:"required,notblank,max=200"`
	Page  int    `query:"page" json:"page" validate:"omitempty,min=1,max=100"`
}

// PageOrFirst returns the requested page, defaulting to 1.
func (r SearchRequest) PageOrFirst() int {
	if r.Page < 1 {
		return 1
	}
	return r.Page
}

type RecentRequest struct {
	Limit int `query:"limit" json:"limit" validate:"omitempty,min=1,max=50"`
}

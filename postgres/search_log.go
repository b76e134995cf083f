package postgres

import (
	"context"
	"moviesearch/movie"
	"time"

	"gorm.io/gorm"
)

// SearchLogModel represents one search a user ran.
type SearchLogModel struct {
	ID           uint      `gorm:"primaryKey"`
	Query        string    `gorm:"not null"`
	Page         int       `gorm:"not null;default:1"`
	TotalResults int       `gorm:"column:total_results;not null;default:0"`
	ResultCount  int       `gorm:"column:result_count;not null;default:0"`
	Found        bool      `gorm:"not null;default:false"`
	DurationMs   int64     `gorm:"column:duration_ms;not null;default:0"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (SearchLogModel) TableName() string {
	return "search_logs"
}

// SearchLogRepository implements movie.SearchLog interface
type SearchLogRepository struct {
	db *gorm.DB
}

// NewSearchLogRepository creates a new search log repository
func NewSearchLogRepository(db *gorm.DB) *SearchLogRepository {
	return &SearchLogRepository{db: db}
}

func (r *SearchLogRepository) Record(ctx context.Context, entry movie.LogEntry) error {
	model := SearchLogModel{
		Query:        entry.Query,
		Page:         entry.Page,
		TotalResults: entry.TotalResults,
		ResultCount:  entry.ResultCount,
		Found:        entry.Found,
		DurationMs:   entry.Duration.Milliseconds(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// Recent returns the latest distinct queries that found something, newest first.
func (r *SearchLogRepository) Recent(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	const sql = `
SELECT query
FROM search_logs
WHERE found
GROUP BY query
ORDER BY MAX(created_at) DESC, query
LIMIT ?`

	queries := []string{}
	if err := r.db.WithContext(ctx).Raw(sql, limit).Scan(&queries).Error; err != nil {
		return nil, err
	}
	return queries, nil
}

package history

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/justchokingaround/vidstream/internal/database"
)

// Service records and queries playback history
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// SortOrder defines the sorting order for history entries
type SortOrder string

const (
	SortRecentFirst SortOrder = "recent"
	SortOldestFirst SortOrder = "oldest"
	SortTitleAsc    SortOrder = "title"
	SortTitleDesc   SortOrder = "title_desc"
)

// ParseSortOrder maps a flag value to a SortOrder, defaulting to recent first
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", SortRecentFirst:
		return SortRecentFirst, nil
	case SortOldestFirst, SortTitleAsc, SortTitleDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q (want recent, oldest, title or title_desc)", s)
}

// FilterOptions narrows a history query
type FilterOptions struct {
	MediaType   string // movie, series, or empty for all
	SearchQuery string // substring of the title
	Limit       int    // 0 = no limit
	Offset      int
	SortBy      SortOrder
}

// Stats summarizes the history table
type Stats struct {
	TotalItems  int64
	MovieCount  int64
	SeriesCount int64
	LastWatched time.Time
}

// NewService creates a new history service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Record stores an installed embed. Replaying the same title, season and
// episode refreshes the existing entry instead of adding a new one.
func (s *Service) Record(entry database.History) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	now := s.now()
	var existing database.History
	err := s.db.Where("media_id = ? AND media_type = ? AND season = ? AND episode = ?",
		entry.MediaID, entry.MediaType, entry.Season, entry.Episode).
		First(&existing).Error
	if err == nil {
		existing.Title = entry.Title
		existing.EmbedURL = entry.EmbedURL
		existing.WatchedAt = now
		return s.db.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up history: %w", err)
	}

	entry.ID = 0
	entry.WatchedAt = now
	return s.db.Create(&entry).Error
}

// GetHistory retrieves entries matching filter
func (s *Service) GetHistory(filter FilterOptions) ([]database.History, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := s.db.Model(&database.History{})
	if filter.MediaType != "" {
		query = query.Where("media_type = ?", filter.MediaType)
	}
	if filter.SearchQuery != "" {
		query = query.Where("title LIKE ?", "%"+filter.SearchQuery+"%")
	}

	switch filter.SortBy {
	case SortOldestFirst:
		query = query.Order("watched_at ASC").Order("id ASC")
	case SortTitleAsc:
		query = query.Order("title ASC")
	case SortTitleDesc:
		query = query.Order("title DESC")
	default:
		query = query.Order("watched_at DESC").Order("id DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var entries []database.History
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return entries, nil
}

// DeleteByID removes a single entry
func (s *Service) DeleteByID(id uint) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.Delete(&database.History{}, id).Error
}

// DeleteByMediaID removes every entry for a catalog item
func (s *Service) DeleteByMediaID(mediaID int) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.Where("media_id = ?", mediaID).Delete(&database.History{}).Error
}

// Clear deletes the whole history
func (s *Service) Clear() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&database.History{}).Error
}

// Cleanup removes entries older than maxAge and reports how many were deleted
func (s *Service) Cleanup(maxAge time.Duration) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	cutoff := s.now().Add(-maxAge)
	res := s.db.Where("watched_at < ?", cutoff).Delete(&database.History{})
	return res.RowsAffected, res.Error
}

// GetStats counts entries per kind
func (s *Service) GetStats() (*Stats, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var stats Stats
	if err := s.db.Model(&database.History{}).Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&database.History{}).Where("media_type = ?", "movie").Count(&stats.MovieCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&database.History{}).Where("media_type = ?", "series").Count(&stats.SeriesCount).Error; err != nil {
		return nil, err
	}

	if stats.TotalItems > 0 {
		var latest database.History
		if err := s.db.Order("watched_at DESC").First(&latest).Error; err != nil {
			return nil, err
		}
		stats.LastWatched = latest.WatchedAt
	}
	return &stats, nil
}

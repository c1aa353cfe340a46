package moods

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moodlog-app/moodlog-backend/internal/auth"
	"github.com/moodlog-app/moodlog-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNothingToRecord    = errors.New("select a mood or write something about your day")
	ErrRatingOutOfRange   = errors.New("rating must be between 1 and 5")
	ErrAlreadyLoggedToday = errors.New("already logged a mood today")
)

// Service handles mood entry business logic.
type Service struct {
	db     *gorm.DB
	filter *ContentFilter
}

func NewService(db *gorm.DB, filter *ContentFilter) *Service {
	return &Service{db: db, filter: filter}
}

// Stats is the dashboard summary: total entries plus the trailing
// 7-calendar-day rating average. WeeklyAverage is nil when no rated
// entries exist in that window.
type Stats struct {
	TotalEntries  int64    `json:"total_entries"`
	WeeklyAverage *float64 `json:"weekly_average"`
}

// Export is the full data dump a user can download.
type Export struct {
	ExportDate time.Time          `json:"export_date"`
	UserID     uuid.UUID          `json:"user_id"`
	Entries    []models.MoodEntry `json:"entries"`
}

// Create records one mood entry for today. Either a rating or a
// non-empty note is required; a second same-day submission is rejected.
func (s *Service) Create(userID uuid.UUID, rating *int, note string) (*models.MoodEntry, error) {
	note = strings.TrimSpace(note)

	if rating == nil && note == "" {
		return nil, ErrNothingToRecord
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrRatingOutOfRange
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	var existing models.MoodEntry
	if err := s.db.Scopes(auth.OwnedBy(userID)).Where("entry_date = ?", today).First(&existing).Error; err == nil {
		return nil, ErrAlreadyLoggedToday
	}

	if s.filter.Flagged(note) {
		note = "[content filtered]"
	}

	entry := &models.MoodEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Rating:    rating,
		Note:      note,
		EntryDate: today,
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

// Recent returns the newest entries first.
func (s *Service) Recent(userID uuid.UUID, limit int) ([]models.MoodEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var entries []models.MoodEntry
	err := s.db.Scopes(auth.OwnedBy(userID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// Window returns entries created within the trailing number of days,
// oldest first. The insight analyzer consumes this ordering.
func (s *Service) Window(userID uuid.UUID, days int) ([]models.MoodEntry, error) {
	since := time.Now().AddDate(0, 0, -days)

	var entries []models.MoodEntry
	err := s.db.Scopes(auth.OwnedBy(userID)).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (s *Service) Stats(userID uuid.UUID) (*Stats, error) {
	var total int64
	if err := s.db.Model(&models.MoodEntry{}).Scopes(auth.OwnedBy(userID)).Count(&total).Error; err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	var week []models.MoodEntry
	if err := s.db.Scopes(auth.OwnedBy(userID)).
		Where("created_at >= ?", weekAgo).
		Find(&week).Error; err != nil {
		return nil, err
	}

	stats := &Stats{TotalEntries: total}

	var sum, count float64
	for _, e := range week {
		if e.Rating != nil {
			sum += float64(*e.Rating)
			count++
		}
	}
	if count > 0 {
		avg := math.Round(sum/count*10) / 10
		stats.WeeklyAverage = &avg
	}

	return stats, nil
}

func (s *Service) ExportAll(userID uuid.UUID) (*Export, error) {
	var entries []models.MoodEntry
	if err := s.db.Scopes(auth.OwnedBy(userID)).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return &Export{
		ExportDate: time.Now().UTC(),
		UserID:     userID,
		Entries:    entries,
	}, nil
}

// DeleteAll removes every mood entry the user owns and reports how many
// rows went away.
func (s *Service) DeleteAll(userID uuid.UUID) (int64, error) {
	result := s.db.Scopes(auth.OwnedBy(userID)).Delete(&models.MoodEntry{})
	return result.RowsAffected, result.Error
}

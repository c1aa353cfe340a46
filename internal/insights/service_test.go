package insights

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moodlog-app/moodlog-backend/internal/models"
	"github.com/moodlog-app/moodlog-backend/internal/moods"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.MoodEntry{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	svc := NewService(moods.NewService(db, nil), Fallback{Backup: RuleSuggester{}})
	return svc, db
}

func seed(t *testing.T, db *gorm.DB, userID uuid.UUID, daysAgo, rating int, note string) {
	t.Helper()
	created := time.Now().UTC().AddDate(0, 0, -daysAgo)
	entry := models.MoodEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Rating:    &rating,
		Note:      note,
		EntryDate: created.Truncate(24 * time.Hour),
		CreatedAt: created,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}
}

func TestSuggestions_InsufficientData(t *testing.T) {
	svc, db := testService(t)
	userID := uuid.New()

	for i := 1; i <= 3; i++ {
		seed(t, db, userID, i, 3, "")
	}

	summary, text, err := svc.Suggestions(context.Background(), userID)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if summary.Trend != TrendInsufficientData {
		t.Errorf("Trend = %q, want %q", summary.Trend, TrendInsufficientData)
	}
	if !strings.Contains(text, "3 mood entries") {
		t.Errorf("message = %q, want entry count mentioned", text)
	}
	if strings.Contains(text, "1. ") {
		t.Errorf("no suggestions expected with insufficient data, got %q", text)
	}
}

func TestSuggestions_FullPipeline(t *testing.T) {
	svc, db := testService(t)
	userID := uuid.New()
	other := uuid.New()

	for i := 1; i <= 10; i++ {
		seed(t, db, userID, i, 2, "tired and worried")
	}
	// Another user's great month must not leak into this analysis.
	for i := 1; i <= 10; i++ {
		seed(t, db, other, i, 5, "wonderful")
	}

	summary, text, err := svc.Suggestions(context.Background(), userID)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if summary.TotalEntries != 10 {
		t.Errorf("TotalEntries = %d, want 10", summary.TotalEntries)
	}
	if summary.AverageMood != 2.0 {
		t.Errorf("AverageMood = %v, want 2.0", summary.AverageMood)
	}
	if summary.Trend != TrendStable {
		t.Errorf("Trend = %q, want %q", summary.Trend, TrendStable)
	}
	if summary.Themes.Positive != 0 {
		t.Errorf("Positive = %d, want 0 (no leak from other user)", summary.Themes.Positive)
	}
	// averageMood < 3 selects the low-mood suggestion set.
	if !strings.HasPrefix(text, "1. ") || !strings.Contains(text, "mindfulness") {
		t.Errorf("suggestions = %q, want numbered low-mood set", text)
	}
}

func TestSummary_WindowedPerUser(t *testing.T) {
	svc, db := testService(t)
	userID := uuid.New()

	// Seven recent entries and one far outside the window.
	for i := 1; i <= 7; i++ {
		seed(t, db, userID, i, 4, "")
	}
	seed(t, db, userID, 45, 1, "the bad old days")

	summary, err := svc.Summary(userID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.TotalEntries != 7 {
		t.Errorf("TotalEntries = %d, want 7 (45-day-old entry excluded)", summary.TotalEntries)
	}
	if summary.AverageMood != 4.0 {
		t.Errorf("AverageMood = %v, want 4.0", summary.AverageMood)
	}
}

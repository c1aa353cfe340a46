package models

import (
	"time"

	"github.com/google/uuid"
)

// MoodEntry is one user's recorded mood for a given calendar day.
// Rating is a pointer: a text-only entry has no rating, and that is
// different from a rating of zero. No soft delete here -- a bulk delete
// must actually free the one-entry-per-day slot.
type MoodEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_mood_entries_user_date" json:"user_id"`
	Rating    *int      `json:"rating"`
	Note      string    `gorm:"type:text" json:"note"`
	EntryDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_mood_entries_user_date" json:"entry_date"`
	CreatedAt time.Time `json:"created_at"`
}

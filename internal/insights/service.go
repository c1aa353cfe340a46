package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moodlog-app/moodlog-backend/internal/moods"
)

// InsufficientDataMessage is shown instead of suggestions until a week
// of entries exists.
func InsufficientDataMessage(entryCount int) string {
	noun := "entries"
	if entryCount == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("You have %d mood %s so far. Track your mood for at least 7 days to receive personalized suggestions.", entryCount, noun)
}

// Service runs the analysis pipeline for one user: fetch the trailing
// window, analyze it, and optionally generate suggestion text.
type Service struct {
	moods     *moods.Service
	suggester Suggester
}

func NewService(moodService *moods.Service, suggester Suggester) *Service {
	return &Service{moods: moodService, suggester: suggester}
}

func (s *Service) Summary(userID uuid.UUID) (Summary, error) {
	entries, err := s.moods.Window(userID, windowDays)
	if err != nil {
		return Summary{}, err
	}
	return Analyze(entries, time.Now()), nil
}

// Suggestions returns the summary plus suggestion text. With too little
// data the suggester is never invoked and a distinct message comes back
// instead. Suggestion generation itself cannot fail: remote errors are
// absorbed by the local fallback.
func (s *Service) Suggestions(ctx context.Context, userID uuid.UUID) (Summary, string, error) {
	summary, err := s.Summary(userID)
	if err != nil {
		return Summary{}, "", err
	}

	if summary.InsufficientData() {
		return summary, InsufficientDataMessage(summary.TotalEntries), nil
	}

	text, err := s.suggester.Suggest(ctx, summary)
	if err != nil {
		// Only reachable with a custom suggester whose backup fails.
		return summary, InsufficientDataMessage(summary.TotalEntries), nil
	}
	return summary, text, nil
}

package insights

import (
	"math"
	"strings"
	"time"

	"github.com/moodlog-app/moodlog-backend/internal/models"
)

// Trend is the coarse classification of where mood is heading.
type Trend string

const (
	TrendInsufficientData Trend = "insufficient_data"
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
)

// windowDays bounds the analysis to a trailing window; minEntries is
// the threshold below which no trend or themes are computed.
const (
	windowDays = 30
	minEntries = 7
)

// ThemeCounts tallies keyword matches per fixed theme category across
// all notes in the window.
type ThemeCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Social   int `json:"social"`
	Health   int `json:"health"`
	Academic int `json:"academic"`
}

// Summary is the ephemeral result of one analysis pass. It is computed
// on demand and never persisted.
type Summary struct {
	TotalEntries  int         `json:"total_entries"`
	AverageMood   float64     `json:"average_mood"`
	RecentAverage float64     `json:"recent_average"`
	Trend         Trend       `json:"trend"`
	Themes        ThemeCounts `json:"themes"`
	Status        string      `json:"status"`
}

// InsufficientData reports whether the window held too few entries to
// compute a trend or themes.
func (s Summary) InsufficientData() bool {
	return s.Trend == TrendInsufficientData && s.TotalEntries < minEntries
}

var themeKeywords = map[string][]string{
	"positive": {"happy", "great", "good", "excited", "proud", "grateful", "love", "wonderful"},
	"negative": {"sad", "bad", "terrible", "angry", "frustrated", "anxious", "worried", "tired"},
	"social":   {"friends", "family", "school", "work", "relationship", "social", "people"},
	"health":   {"sleep", "exercise", "eat", "health", "tired", "energy", "sick"},
	"academic": {"school", "study", "homework", "test", "grade", "learn", "class"},
}

// Analyze computes the mood summary for entries inside the trailing
// 30-day window ending at now. Entries must be in chronological
// (ascending) order. Pure function of its inputs: no clock, no I/O.
func Analyze(entries []models.MoodEntry, now time.Time) Summary {
	cutoff := now.AddDate(0, 0, -windowDays)

	window := make([]models.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if !e.CreatedAt.Before(cutoff) {
			window = append(window, e)
		}
	}

	if len(window) < minEntries {
		return Summary{
			TotalEntries: len(window),
			Trend:        TrendInsufficientData,
		}
	}

	// Entries without a rating are excluded from the means, not
	// treated as zero.
	ratings := make([]int, 0, len(window))
	for _, e := range window {
		if e.Rating != nil {
			ratings = append(ratings, *e.Rating)
		}
	}

	average := mean(ratings)

	recentEntries := window
	if len(recentEntries) > 7 {
		recentEntries = recentEntries[len(recentEntries)-7:]
	}
	recentRatings := make([]int, 0, len(recentEntries))
	for _, e := range recentEntries {
		if e.Rating != nil {
			recentRatings = append(recentRatings, *e.Rating)
		}
	}
	recentAverage := mean(recentRatings)

	status := "stable"
	if recentAverage > average {
		status = "improving"
	} else if recentAverage < average {
		status = "declining"
	}

	return Summary{
		TotalEntries:  len(window),
		AverageMood:   round1(average),
		RecentAverage: round1(recentAverage),
		Trend:         calculateTrend(ratings),
		Themes:        extractThemes(window),
		Status:        status,
	}
}

// calculateTrend splits the rating sequence in half and compares the
// means. Text-only entries carry no rating, so the sequence can still
// be short even when the window has enough entries.
func calculateTrend(ratings []int) Trend {
	if len(ratings) < minEntries {
		return TrendInsufficientData
	}

	half := len(ratings) / 2
	firstAvg := mean(ratings[:half])
	secondAvg := mean(ratings[half:])

	difference := secondAvg - firstAvg
	switch {
	case difference > 0.5:
		return TrendImproving
	case difference < -0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// extractThemes counts, case-insensitively, each theme keyword that
// appears in each non-empty note. A note can feed several themes, and
// a keyword listed under two themes ("tired", "school") counts in both.
func extractThemes(entries []models.MoodEntry) ThemeCounts {
	var counts ThemeCounts

	for _, e := range entries {
		note := strings.ToLower(strings.TrimSpace(e.Note))
		if note == "" {
			continue
		}
		for theme, keywords := range themeKeywords {
			for _, keyword := range keywords {
				if strings.Contains(note, keyword) {
					counts.add(theme)
				}
			}
		}
	}

	return counts
}

func (t *ThemeCounts) add(theme string) {
	switch theme {
	case "positive":
		t.Positive++
	case "negative":
		t.Negative++
	case "social":
		t.Social++
	case "health":
		t.Health++
	case "academic":
		t.Academic++
	}
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

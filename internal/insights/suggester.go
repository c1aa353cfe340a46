package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Suggester produces a short numbered list of suggestions from a mood
// summary.
type Suggester interface {
	Suggest(ctx context.Context, summary Summary) (string, error)
}

// --- OpenAI-backed suggester ---

type openAIChatRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenAISuggester asks a chat-completions endpoint for personalized
// suggestions built from the structured summary.
type OpenAISuggester struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

func NewOpenAISuggester(apiKey, apiURL, model string, timeout time.Duration) *OpenAISuggester {
	return &OpenAISuggester{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *OpenAISuggester) Suggest(ctx context.Context, summary Summary) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("no API key configured")
	}

	reqBody := openAIChatRequest{
		Model: s.model,
		Messages: []openAIMessage{
			{Role: "system", Content: "You are a caring mental health assistant. Reply with a numbered list of 3-4 short, encouraging, actionable suggestions. No preamble, no markdown headings."},
			{Role: "user", Content: buildPrompt(summary)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggestion API returned status %d", resp.StatusCode)
	}

	var chatResp openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("suggestion API returned no choices")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("suggestion API returned empty content")
	}

	return content, nil
}

func buildPrompt(summary Summary) string {
	return fmt.Sprintf(`Based on this mood tracking analysis:

Mood statistics:
- Total entries: %d
- Overall average mood: %.1f/5
- Recent average (last 7 entries): %.1f/5
- Trend: %s
- Mood status: %s

Theme mentions in notes:
- Positive: %d
- Negative: %d
- Social: %d
- Health: %d
- Academic: %d

Provide 3-4 personalized, encouraging suggestions to help improve or maintain this person's mental wellbeing. Keep them positive, actionable, and focused on small achievable steps. If their mood is already good, suggest ways to maintain it and build resilience.`,
		summary.TotalEntries,
		summary.AverageMood,
		summary.RecentAverage,
		summary.Trend,
		summary.Status,
		summary.Themes.Positive,
		summary.Themes.Negative,
		summary.Themes.Social,
		summary.Themes.Health,
		summary.Themes.Academic,
	)
}

// --- Rule-table fallback ---

var (
	lowMoodSuggestions = []string{
		"Try starting your day with a five-minute mindfulness exercise - sit quietly and focus on your breathing",
		"Consider talking to someone you trust about how you're feeling - they might have a helpful perspective",
		"Set one small, achievable goal for today that will make you feel accomplished",
	}
	highMoodSuggestions = []string{
		"Great job keeping your mood up - keep celebrating small wins throughout your day",
		"Share the positive energy by doing something kind for someone else today",
		"Build on the momentum by picking up a new skill or hobby you're curious about",
	}
	steadyMoodSuggestions = []string{
		"Your mood is holding steady - that's a solid foundation, so try mixing up your routine with something new",
		"Physical activity can lift your mood - try a short walk or your favorite sport",
		"Express yourself creatively through drawing, music, or writing about your thoughts",
	}

	socialSuggestion = "Your social connections look like a bright spot - plan quality time with friends or family"
	healthSuggestion = "Focus on good sleep and regular meals - both have an outsized impact on how you feel"
)

// RuleSuggester is the deterministic local fallback. It never fails.
type RuleSuggester struct{}

func (RuleSuggester) Suggest(_ context.Context, summary Summary) (string, error) {
	var suggestions []string

	switch {
	case summary.Trend == TrendDeclining || summary.AverageMood < 3:
		suggestions = append(suggestions, lowMoodSuggestions...)
	case summary.Trend == TrendImproving || summary.AverageMood >= 4:
		suggestions = append(suggestions, highMoodSuggestions...)
	default:
		suggestions = append(suggestions, steadyMoodSuggestions...)
	}

	if summary.Themes.Social > summary.Themes.Negative {
		suggestions = append(suggestions, socialSuggestion)
	}
	if summary.Themes.Health > 0 {
		suggestions = append(suggestions, healthSuggestion)
	}

	if len(suggestions) > 4 {
		suggestions = suggestions[:4]
	}

	var b strings.Builder
	for i, s := range suggestions {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, s)
	}
	return b.String(), nil
}

// --- Try/fallback chain ---

// Fallback tries the primary suggester and silently falls back to the
// backup when it fails. Suggest never returns an error as long as the
// backup cannot fail (RuleSuggester cannot).
type Fallback struct {
	Primary Suggester
	Backup  Suggester
}

func (f Fallback) Suggest(ctx context.Context, summary Summary) (string, error) {
	if f.Primary != nil {
		text, err := f.Primary.Suggest(ctx, summary)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			slog.Warn("remote suggestion failed, using local fallback", "error", err)
		}
	}
	return f.Backup.Suggest(ctx, summary)
}

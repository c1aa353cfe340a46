package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type failingSuggester struct{}

func (failingSuggester) Suggest(context.Context, Summary) (string, error) {
	return "", errors.New("capability unavailable")
}

func assertNumberedList(t *testing.T, text string, maxItems int) {
	t.Helper()
	if strings.TrimSpace(text) == "" {
		t.Fatal("suggestion text is empty")
	}
	lines := strings.Split(text, "\n")
	if len(lines) > maxItems {
		t.Errorf("got %d suggestions, want at most %d", len(lines), maxItems)
	}
	for i, line := range lines {
		want := string(rune('1'+i)) + ". "
		if !strings.HasPrefix(line, want) {
			t.Errorf("line %d = %q, want prefix %q", i, line, want)
		}
	}
}

func TestRuleSuggester_LowMood(t *testing.T) {
	summary := Summary{
		TotalEntries: 10,
		AverageMood:  2.1,
		Trend:        TrendDeclining,
		Status:       "declining",
	}

	text, err := RuleSuggester{}.Suggest(context.Background(), summary)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	assertNumberedList(t, text, 4)
	if !strings.Contains(text, "mindfulness") {
		t.Errorf("low-mood suggestions missing mindfulness item: %q", text)
	}
}

func TestRuleSuggester_HighMood(t *testing.T) {
	summary := Summary{
		TotalEntries: 10,
		AverageMood:  4.5,
		Trend:        TrendImproving,
		Status:       "improving",
	}

	text, err := RuleSuggester{}.Suggest(context.Background(), summary)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	assertNumberedList(t, text, 4)
	if !strings.Contains(text, "celebrating small wins") {
		t.Errorf("high-mood suggestions missing expected item: %q", text)
	}
}

func TestRuleSuggester_ThemeExtras(t *testing.T) {
	summary := Summary{
		TotalEntries: 12,
		AverageMood:  3.2,
		Trend:        TrendStable,
		Status:       "stable",
		Themes:       ThemeCounts{Social: 5, Negative: 1, Health: 2},
	}

	text, err := RuleSuggester{}.Suggest(context.Background(), summary)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	// Three base items plus the social extra fill the cap; the health
	// extra must be cut.
	assertNumberedList(t, text, 4)
	if !strings.Contains(text, "friends or family") {
		t.Errorf("social extra missing: %q", text)
	}
	if strings.Contains(text, "good sleep") {
		t.Errorf("health extra should have been capped out: %q", text)
	}
}

func TestRuleSuggester_HealthExtraWithoutSocial(t *testing.T) {
	summary := Summary{
		TotalEntries: 12,
		AverageMood:  3.2,
		Trend:        TrendStable,
		Status:       "stable",
		Themes:       ThemeCounts{Social: 1, Negative: 3, Health: 2},
	}

	text, err := RuleSuggester{}.Suggest(context.Background(), summary)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	assertNumberedList(t, text, 4)
	if !strings.Contains(text, "good sleep") {
		t.Errorf("health extra missing: %q", text)
	}
}

func TestFallback_NeverFails(t *testing.T) {
	summary := Summary{TotalEntries: 10, AverageMood: 3.0, Trend: TrendStable, Status: "stable"}

	tests := []struct {
		name    string
		primary Suggester
	}{
		{"erroring primary", failingSuggester{}},
		{"nil primary", nil},
		{"unconfigured openai", NewOpenAISuggester("", "https://api.openai.com/v1/chat/completions", "gpt-4o-mini", time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := Fallback{Primary: tt.primary, Backup: RuleSuggester{}}
			text, err := chain.Suggest(context.Background(), summary)
			if err != nil {
				t.Fatalf("Suggest() error = %v", err)
			}
			assertNumberedList(t, text, 4)
		})
	}
}

func TestOpenAISuggester_ServerError_FallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	primary := NewOpenAISuggester("test-key", server.URL, "gpt-4o-mini", time.Second)
	chain := Fallback{Primary: primary, Backup: RuleSuggester{}}

	text, err := chain.Suggest(context.Background(), Summary{TotalEntries: 9, AverageMood: 2.0, Trend: TrendDeclining})
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	assertNumberedList(t, text, 4)
}

func TestOpenAISuggester_Success(t *testing.T) {
	const reply = "1. Keep a gratitude journal\n2. Take a short walk\n3. Call a friend"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req openAIChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "Total entries: 14") {
			t.Errorf("prompt missing summary context: %+v", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
	defer server.Close()

	s := NewOpenAISuggester("test-key", server.URL, "gpt-4o-mini", time.Second)
	text, err := s.Suggest(context.Background(), Summary{TotalEntries: 14, AverageMood: 3.5, RecentAverage: 4.0, Trend: TrendImproving, Status: "improving"})
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if text != reply {
		t.Errorf("text = %q, want %q", text, reply)
	}
}

func TestOpenAISuggester_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	s := NewOpenAISuggester("test-key", server.URL, "gpt-4o-mini", time.Second)
	if _, err := s.Suggest(context.Background(), Summary{}); err == nil {
		t.Error("expected error for malformed response")
	}
}

func TestInsufficientDataMessage(t *testing.T) {
	if msg := InsufficientDataMessage(1); !strings.Contains(msg, "1 mood entry ") {
		t.Errorf("singular form wrong: %q", msg)
	}
	if msg := InsufficientDataMessage(4); !strings.Contains(msg, "4 mood entries ") {
		t.Errorf("plural form wrong: %q", msg)
	}
}

package moods

import "strings"

// ContentFilter flags notes containing blocked words.
type ContentFilter struct {
	blockedWords []string
}

func NewContentFilter(blockedWords []string) *ContentFilter {
	return &ContentFilter{blockedWords: blockedWords}
}

func (f *ContentFilter) Flagged(content string) bool {
	if f == nil {
		return false
	}
	contentLower := strings.ToLower(content)
	for _, word := range f.blockedWords {
		if strings.Contains(contentLower, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

package ai

import (
	"testing"

	"github.com/zhouzirui/moodmate/backend/internal/analysis/emotion"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
)

func TestFallbackUnknownLanguage(t *testing.T) {
	if got := Fallback(mood.Language("fr")); got != Fallback(mood.English) {
		t.Fatalf("unknown language should fall back to english, got %+v", got)
	}
}

func TestOfflineTablesCoverEveryLabel(t *testing.T) {
	for _, label := range emotion.Labels {
		if !offlineEnglish[label].Complete() {
			t.Errorf("english table missing %s", label)
		}
		if !offlineItalian[label].Complete() {
			t.Errorf("italian table missing %s", label)
		}
	}
}

func TestOfflineSuggestion(t *testing.T) {
	got := OfflineSuggestion([]string{"😢", "😞"}, mood.English)
	if got != offlineEnglish[emotion.Sad] {
		t.Fatalf("unexpected offline suggestion: %+v", got)
	}

	got = OfflineSuggestion([]string{"🦄"}, mood.Italian)
	if got != offlineItalian[emotion.Neutral] {
		t.Fatalf("unknown emoji should map to neutral, got %+v", got)
	}
}

package palette

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/moodmate/backend/internal/model/palette"
)

func TestListPalette(t *testing.T) {
	r := chi.NewRouter()
	New(palette.NewMemoryStore([]palette.Token{"😀", "😢"})).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/palette", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Emojis []string `json:"emojis"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Emojis) != 2 || body.Emojis[0] != "😀" {
		t.Fatalf("unexpected palette %v", body.Emojis)
	}
}

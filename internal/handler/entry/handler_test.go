package entry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zhouzirui/moodmate/backend/internal/app"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	"github.com/zhouzirui/moodmate/backend/internal/model/palette"
	"github.com/zhouzirui/moodmate/backend/internal/storage"
)

type stubSuggester struct {
	calls int
}

func (s *stubSuggester) Suggest(context.Context, []string, mood.Language) mood.Suggestion {
	s.calls++
	return mood.Suggestion{Message: "You got this", Suggestion: "Stretch for five minutes"}
}

func setupRouter(t *testing.T) (*chi.Mux, *app.App, *stubSuggester) {
	t.Helper()
	s := &stubSuggester{}
	a := app.New(storage.NewMemoryStore(), s, palette.NewMemoryStore(palette.Seed()), app.Options{})
	require.NoError(t, a.Load(context.Background()))

	r := chi.NewRouter()
	New(a, zaptest.NewLogger(t)).RegisterRoutes(r)
	return r, a, s
}

func toggle(t *testing.T, r http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"token": token})
	req := httptest.NewRequest(http.MethodPost, "/selection/toggle", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestToggleSelection(t *testing.T) {
	r, a, _ := setupRouter(t)

	resp := toggle(t, r, "😀")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Selected bool     `json:"selected"`
		Tokens   []string `json:"tokens"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Selected)
	assert.Equal(t, []string{"😀"}, body.Tokens)

	resp = toggle(t, r, "😀")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, a.Selection())
}

func TestToggleRejectsUnknownToken(t *testing.T) {
	r, _, _ := setupRouter(t)

	if resp := toggle(t, r, "banana"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if resp := toggle(t, r, ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty token, got %d", resp.Code)
	}
}

func TestClearSelection(t *testing.T) {
	r, a, _ := setupRouter(t)
	toggle(t, r, "😀")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/selection", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, a.Selection())
}

func TestSubmitEmptySelection(t *testing.T) {
	r, a, s := setupRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/suggestions", nil))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Zero(t, s.calls)
	assert.Empty(t, a.History())
}

func TestSubmit(t *testing.T) {
	r, a, s := setupRouter(t)
	toggle(t, r, "😢")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/suggestions", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var entry app.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.Equal(t, []string{"😢"}, entry.Tokens)
	require.NotNil(t, entry.Record.AIResponse)
	assert.Equal(t, "You got this", entry.Record.AIResponse.Message)
	assert.Equal(t, 1, s.calls)
	assert.Len(t, a.History(), 1)
}

func TestSubmitStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, SubmitStatus(app.ErrEmptySelection))
	assert.Equal(t, http.StatusConflict, SubmitStatus(app.ErrBusy))
	assert.Equal(t, http.StatusInternalServerError, SubmitStatus(context.Canceled))
}

package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"github.com/zhouzirui/moodmate/backend/internal/app"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	"github.com/zhouzirui/moodmate/backend/internal/model/palette"
	"github.com/zhouzirui/moodmate/backend/internal/storage"
)

type stubSuggester struct{}

func (stubSuggester) Suggest(context.Context, []string, mood.Language) mood.Suggestion {
	return mood.Suggestion{Message: "Nice to see you smile", Suggestion: "Go for a run"}
}

func setup(t *testing.T, submissions int) (*chi.Mux, *app.App) {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 10, 18, 15, 4, 0, 0, time.UTC) }
	a := app.New(storage.NewMemoryStore(), stubSuggester{}, palette.NewMemoryStore(palette.Seed()), app.Options{Clock: clock})
	require.NoError(t, a.Load(context.Background()))

	if submissions > 0 {
		_, err := a.Toggle("😀")
		require.NoError(t, err)
		for i := 0; i < submissions; i++ {
			_, err := a.Submit(context.Background())
			require.NoError(t, err)
		}
	}

	r := chi.NewRouter()
	New(a, zaptest.NewLogger(t), time.UTC).RegisterRoutes(r)
	return r, a
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestListEmpty(t *testing.T) {
	r, _ := setup(t, 0)

	resp := get(r, "/history")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Records []listItem `json:"records"`
		Empty   bool       `json:"empty"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Empty)
	assert.Empty(t, body.Records)
}

func TestListAndGet(t *testing.T) {
	r, a := setup(t, 2)

	resp := get(r, "/history")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Records []listItem `json:"records"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Records, 2)
	assert.Equal(t, "Oct 18, 03:04 PM", body.Records[0].Display)
	assert.Equal(t, "Go for a run", body.Records[0].Suggestion)

	id := a.History()[0].ID
	resp = get(r, "/history/"+id)
	require.Equal(t, http.StatusOK, resp.Code)

	var record mood.EmotionRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	assert.Equal(t, id, record.ID)
	assert.Equal(t, "😀", record.Emoji)
}

func TestGetMissing(t *testing.T) {
	r, _ := setup(t, 1)
	assert.Equal(t, http.StatusNotFound, get(r, "/history/nope").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/history/nope/share").Code)
}

func TestShare(t *testing.T) {
	r, a := setup(t, 1)

	resp := get(r, "/history/"+a.History()[0].ID+"/share")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, resp.Body.String(), "Nice to see you smile")
}

func TestSummary(t *testing.T) {
	r, _ := setup(t, 3)

	resp := get(r, "/history/summary")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Total    int `json:"total"`
		Emotions []struct {
			Emotion string `json:"emotion"`
			Count   int    `json:"count"`
		} `json:"emotions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 3, body.Total)

	counts := map[string]int{}
	for _, row := range body.Emotions {
		counts[row.Emotion] = row.Count
	}
	assert.Equal(t, 3, counts["happy"])
}

func TestExport(t *testing.T) {
	r, _ := setup(t, 2)

	resp := get(r, "/history/export.xlsx")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, xlsxContentType, resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("History")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

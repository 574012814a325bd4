package history

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/app"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	"github.com/zhouzirui/moodmate/backend/internal/service/export"
	"github.com/zhouzirui/moodmate/backend/internal/service/journal"
	"github.com/zhouzirui/moodmate/backend/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler 历史记录页面的HTTP处理器
type Handler struct {
	app    *app.App
	logger *zap.Logger
	loc    *time.Location
}

// New 创建历史处理器。loc 为 nil 时使用本地时区。
func New(a *app.App, logger *zap.Logger, loc *time.Location) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Handler{app: a, logger: logger.Named("history"), loc: loc}
}

// RegisterRoutes 注册历史相关路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/summary", h.handleSummary)
		r.Get("/export.xlsx", h.handleExport)
		r.Get("/{id}", h.handleGet)
		r.Get("/{id}/share", h.handleShare)
	})
}

type listItem struct {
	ID         string `json:"id,omitempty"`
	Emoji      string `json:"emoji"`
	Timestamp  int64  `json:"timestamp"`
	Display    string `json:"display"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records := h.app.History()
	items := make([]listItem, 0, len(records))
	for _, record := range records {
		item := listItem{
			ID:        record.ID,
			Emoji:     record.Emoji,
			Timestamp: record.Timestamp,
			Display:   mood.FormatTimestamp(record.Timestamp, h.loc),
		}
		if record.AIResponse != nil {
			item.Message = record.AIResponse.Message
			item.Suggestion = record.AIResponse.Suggestion
		}
		items = append(items, item)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"records": items,
		"empty":   len(items) == 0,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.app.Entry(chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookupError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, record)
}

func (h *Handler) handleShare(w http.ResponseWriter, r *http.Request) {
	record, err := h.app.Entry(chi.URLParam(r, "id"))
	if err != nil {
		h.respondLookupError(w, err)
		return
	}
	utils.RespondText(w, http.StatusOK, export.ShareText(record, h.app.Settings().Language, h.loc))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"total":    len(h.app.History()),
		"emotions": h.app.Summary(),
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, h.app.History(), h.loc); err != nil {
		h.logger.Error("export history failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	name := fmt.Sprintf("moodmate-history-%s.xlsx", time.Now().In(h.loc).Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug("write export failed", zap.Error(err))
	}
}

func (h *Handler) respondLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, journal.ErrRecordNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, err.Error())
}

package entry

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/app"
	"github.com/zhouzirui/moodmate/backend/pkg/utils"
)

// Handler 情绪录入页面的HTTP处理器：选择表情并提交。
type Handler struct {
	app    *app.App
	logger *zap.Logger
}

// New 创建录入处理器
func New(a *app.App, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{app: a, logger: logger.Named("entry")}
}

// RegisterRoutes 注册选择与提交路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/selection", h.handleGetSelection)
	r.Post("/selection/toggle", h.handleToggle)
	r.Delete("/selection", h.handleClear)
	r.Post("/suggestions", h.handleSubmit)
}

func (h *Handler) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"tokens": h.app.Selection(),
		"busy":   h.app.Busy(),
	})
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Token == "" {
		utils.RespondError(w, http.StatusBadRequest, "token is required")
		return
	}

	selected, err := h.app.Toggle(payload.Token)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"token":    payload.Token,
		"selected": selected,
		"tokens":   h.app.Selection(),
	})
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.app.Clear()
	utils.RespondJSON(w, http.StatusOK, map[string]any{"tokens": []string{}})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	entry, err := h.app.Submit(r.Context())
	if err != nil {
		if errors.Is(err, app.ErrNotSaved) {
			h.logger.Warn("entry shown but not persisted", zap.Error(err))
			utils.RespondJSON(w, http.StatusOK, entry)
			return
		}
		utils.RespondError(w, SubmitStatus(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, entry)
}

// SubmitStatus maps a Submit error to an HTTP status.
func SubmitStatus(err error) int {
	switch {
	case errors.Is(err, app.ErrEmptySelection):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

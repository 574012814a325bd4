package settings

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/app"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	settingsService "github.com/zhouzirui/moodmate/backend/internal/service/settings"
	"github.com/zhouzirui/moodmate/backend/pkg/utils"
)

// Handler 设置页面的HTTP处理器
type Handler struct {
	app    *app.App
	logger *zap.Logger
}

// New 创建设置处理器
func New(a *app.App, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{app: a, logger: logger.Named("settings")}
}

// RegisterRoutes 注册设置路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.handleGet)
	r.Patch("/settings", h.handleUpdate)
}

type settingsResponse struct {
	mood.Settings
	Theme string `json:"theme"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	current := h.app.Settings()
	utils.RespondJSON(w, http.StatusOK, settingsResponse{Settings: current, Theme: current.Theme()})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.app.UpdateSetting(r.Context(), payload.Key, payload.Value)
	switch {
	case errors.Is(err, settingsService.ErrUnknownKey), errors.Is(err, settingsService.ErrInvalidValue):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Warn("setting applied but not persisted", zap.String("key", payload.Key), zap.Error(err))
	}

	utils.RespondJSON(w, http.StatusOK, settingsResponse{Settings: updated, Theme: updated.Theme()})
}

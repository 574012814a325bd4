package palette

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/moodmate/backend/internal/model/palette"
	"github.com/zhouzirui/moodmate/backend/pkg/utils"
)

// Handler 表情面板的HTTP处理器
type Handler struct {
	palette palette.Store
}

// New 创建面板处理器
func New(p palette.Store) *Handler {
	return &Handler{palette: p}
}

// RegisterRoutes 注册面板路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/palette", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"emojis": h.palette.List(),
	})
}

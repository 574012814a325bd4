package stream

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/app"
	"github.com/zhouzirui/moodmate/backend/internal/handler/entry"
	"github.com/zhouzirui/moodmate/backend/pkg/utils"
)

const defaultHeartbeat = 8 * time.Second

// Handler 通过 Server-Sent Events 推送提交进度与结果
type Handler struct {
	app       *app.App
	logger    *zap.Logger
	heartbeat time.Duration
}

// New creates a new stream handler
func New(a *app.App, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		app:       a,
		logger:    logger.Named("stream"),
		heartbeat: defaultHeartbeat,
	}
}

// RegisterRoutes registers the SSE submit endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/suggestions/stream", h.handleStream)
}

// Event is the payload of every SSE frame.
type Event struct {
	Tokens []string   `json:"tokens,omitempty"`
	Entry  *app.Entry `json:"entry,omitempty"`
	Error  string     `json:"error,omitempty"`
	Time   string     `json:"time,omitempty"`
}

type submitResult struct {
	entry app.Entry
	err   error
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	tokens := h.app.Selection()
	if len(tokens) == 0 {
		utils.RespondError(w, entry.SubmitStatus(app.ErrEmptySelection), app.ErrEmptySelection.Error())
		return
	}
	if h.app.Busy() {
		utils.RespondError(w, entry.SubmitStatus(app.ErrBusy), app.ErrBusy.Error())
		return
	}

	utils.SetupSSEHeaders(w)
	ctx := r.Context()

	if err := utils.SendSSEEvent(w, flusher, "start", Event{Tokens: tokens}); err != nil {
		h.logger.Debug("client gone before start", zap.Error(err))
		return
	}

	results := make(chan submitResult, 1)
	go func() {
		e, err := h.app.Submit(ctx)
		results <- submitResult{entry: e, err: err}
	}()

	res := h.waitWithHeartbeat(ctx, w, flusher, results)
	h.finish(w, flusher, res)
}

// waitWithHeartbeat keeps the connection alive until Submit returns.
// Submit observes ctx, so the result always arrives.
func (h *Handler) waitWithHeartbeat(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, results <-chan submitResult) submitResult {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	alive := true
	for {
		select {
		case res := <-results:
			return res
		case t := <-ticker.C:
			if !alive || ctx.Err() != nil {
				continue
			}
			if err := utils.SendSSEEvent(w, flusher, "heartbeat", Event{Time: t.UTC().Format(time.RFC3339)}); err != nil {
				alive = false
			}
		}
	}
}

func (h *Handler) finish(w http.ResponseWriter, flusher http.Flusher, res submitResult) {
	if res.err != nil && !errors.Is(res.err, app.ErrNotSaved) {
		h.logger.Warn("submit failed", zap.Error(res.err))
		_ = utils.SendSSEEvent(w, flusher, "error", Event{Error: res.err.Error()})
		return
	}
	if res.err != nil {
		h.logger.Warn("entry shown but not persisted", zap.Error(res.err))
	}

	result := res.entry
	if err := utils.SendSSEEvent(w, flusher, "suggestion", Event{Tokens: result.Tokens, Entry: &result}); err != nil {
		h.logger.Debug("client gone before suggestion", zap.Error(err))
		return
	}
	_ = utils.SendSSEEvent(w, flusher, "end", Event{})
}

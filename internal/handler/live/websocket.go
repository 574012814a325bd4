package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/app"
)

const (
	defaultReadTimeout = 60 * time.Second
	pingInterval       = 54 * time.Second
	writeTimeout       = 10 * time.Second
)

// Handler WebSocket 实时视图：客户端发送指令，服务端推送状态快照。
type Handler struct {
	app         *app.App
	logger      *zap.Logger
	upgrader    websocket.Upgrader
	readTimeout time.Duration
}

// New 创建WebSocket处理器
func New(a *app.App, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		app:         a,
		logger:      logger.Named("websocket"),
		readTimeout: defaultReadTimeout,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/live", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type toggleData struct {
	Token string `json:"token"`
}

type settingData struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	logger := h.logger.With(zap.String("conn", connID))
	logger.Info("new connection")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	})

	go pingLoop(ctx, conn)

	if err := conn.WriteJSON(h.snapshotMessage()); err != nil {
		logger.Debug("write initial snapshot failed", zap.Error(err))
		return
	}

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("read error", zap.Error(err))
			}
			logger.Info("connection closed")
			return
		}
		for _, out := range h.applyCommand(ctx, msg) {
			if err := conn.WriteJSON(out); err != nil {
				logger.Warn("write failed", zap.Error(err))
				return
			}
		}
		// submit 可能远超读超时，期间 pong 无人处理，这里按命令完成时间重新计时
		_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	}
}

// applyCommand runs one inbound command against the app and returns the replies to send.
func (h *Handler) applyCommand(ctx context.Context, msg inboundMessage) []outgoingMessage {
	switch msg.Type {
	case "toggle":
		var data toggleData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.Token == "" {
			return []outgoingMessage{errorMessage("invalid toggle payload")}
		}
		if _, err := h.app.Toggle(data.Token); err != nil {
			return []outgoingMessage{errorMessage(err.Error())}
		}
	case "clear":
		h.app.Clear()
	case "submit":
		entry, err := h.app.Submit(ctx)
		if err != nil && !errors.Is(err, app.ErrNotSaved) {
			return []outgoingMessage{errorMessage(err.Error()), h.snapshotMessage()}
		}
		if err != nil {
			h.logger.Warn("entry shown but not persisted", zap.Error(err))
		}
		return []outgoingMessage{newMessage("suggestion", entry), h.snapshotMessage()}
	case "setting":
		var data settingData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return []outgoingMessage{errorMessage("invalid setting payload")}
		}
		if _, err := h.app.UpdateSetting(ctx, data.Key, data.Value); err != nil {
			return []outgoingMessage{errorMessage(err.Error()), h.snapshotMessage()}
		}
	case "snapshot":
	default:
		return []outgoingMessage{errorMessage("unsupported message type: " + msg.Type)}
	}
	return []outgoingMessage{h.snapshotMessage()}
}

func (h *Handler) snapshotMessage() outgoingMessage {
	return newMessage("snapshot", h.app.Snapshot())
}

func newMessage(kind string, data any) outgoingMessage {
	return outgoingMessage{Type: kind, Data: data, Timestamp: time.Now().Unix()}
}

func errorMessage(message string) outgoingMessage {
	return newMessage("error", map[string]string{"message": message})
}

// pingLoop 定期发送ping消息
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

// Package bootstrap builds the application graph from configuration. It is shared
// by the HTTP server and the terminal client.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/app"
	"github.com/zhouzirui/moodmate/backend/internal/config"
	"github.com/zhouzirui/moodmate/backend/internal/model/palette"
	"github.com/zhouzirui/moodmate/backend/internal/prompt"
	"github.com/zhouzirui/moodmate/backend/internal/service/ai"
	"github.com/zhouzirui/moodmate/backend/internal/storage"
)

// Runtime is the wired application plus the resources that need closing.
type Runtime struct {
	App       *app.App
	Palette   palette.Store
	AI        *ai.Service
	Store     storage.Store
	AIEnabled bool
}

// Close releases the store.
func (r *Runtime) Close() error {
	if r == nil || r.Store == nil {
		return nil
	}
	return r.Store.Close()
}

// OpenStore creates the key-value store selected by cfg.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch storage.StoreType(cfg.Driver) {
	case storage.StoreTypeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return storage.NewStore(storage.StoreTypeRedis,
			storage.WithRedisClient(client),
			storage.WithRedisPrefix(cfg.RedisPrefix),
		)
	default:
		return storage.NewStore(storage.StoreType(cfg.Driver), storage.WithPath(cfg.Path))
	}
}

// LoadPalette returns the YAML palette at path, or the built-in one when path is empty.
func LoadPalette(path string) (palette.Store, error) {
	if path == "" {
		return palette.NewMemoryStore(palette.Seed()), nil
	}
	return palette.LoadFile(path)
}

// NewSuggestionService builds the suggestion client. A model that cannot be created
// is logged and the service falls back to offline suggestions.
func NewSuggestionService(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*ai.Service, bool, error) {
	var chatModel model.BaseChatModel
	if cfg.Enabled() {
		m, err := ai.NewChatModel(ctx, cfg)
		if err != nil {
			logger.Warn("chat model unavailable, using offline suggestions", zap.Error(err))
		} else {
			chatModel = m
		}
	} else {
		logger.Info("LLM credentials not configured, using offline suggestions", zap.String("provider", cfg.Provider))
	}

	svc, err := ai.NewService(ctx, chatModel, prompt.NewBuilder(), logger)
	if err != nil {
		return nil, false, err
	}
	return svc, svc.Enabled(), nil
}

// New wires store, palette, suggestion client and app, and restores persisted state.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	pal, err := LoadPalette(cfg.PaletteFile)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load palette: %w", err)
	}

	suggester, aiEnabled, err := NewSuggestionService(ctx, cfg.AI, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init suggestion service: %w", err)
	}

	a := app.New(store, suggester, pal, app.Options{
		HistoryLimit: cfg.Journal.HistoryLimit,
		Logger:       logger,
	})
	if err := a.Load(ctx); err != nil {
		logger.Warn("restore state failed, continuing with defaults", zap.Error(err))
	}

	logger.Info("application ready",
		zap.String("store", cfg.Storage.Driver),
		zap.Bool("ai", aiEnabled),
		zap.Int("palette", len(pal.List())),
	)

	return &Runtime{
		App:       a,
		Palette:   pal,
		AI:        suggester,
		Store:     store,
		AIEnabled: aiEnabled,
	}, nil
}

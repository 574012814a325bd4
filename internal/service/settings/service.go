package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	"github.com/zhouzirui/moodmate/backend/internal/storage"
)

// Setting keys accepted by Update.
const (
	KeyDarkMode      = "darkMode"
	KeyNotifications = "notificationsEnabled"
	KeyLanguage      = "language"
)

var (
	ErrUnknownKey   = errors.New("unknown setting key")
	ErrInvalidValue = errors.New("invalid setting value")
)

// Keys lists the updatable setting keys.
var Keys = []string{KeyDarkMode, KeyNotifications, KeyLanguage}

// stored mirrors mood.Settings with optional fields so partial blobs keep defaults.
type stored struct {
	DarkMode             *bool   `json:"darkMode"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	Language             *string `json:"language"`
}

// Service holds the user's preferences and persists them as one object.
type Service struct {
	mu       sync.RWMutex
	store    storage.Store
	settings mood.Settings
	logger   *zap.Logger
}

// NewService starts from defaults; call Load to restore persisted preferences.
func NewService(store storage.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		settings: mood.DefaultSettings(),
		logger:   logger.Named("settings"),
	}
}

// Load 读取持久化的设置；缺失或损坏时使用默认值。
func (s *Service) Load(ctx context.Context) error {
	var raw stored
	found, err := storage.LoadJSON(ctx, s.store, mood.SettingsKey, &raw)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.Warn("stored settings are corrupt, using defaults", zap.Error(err))
		found = false
	case err != nil:
		return fmt.Errorf("load settings: %w", err)
	}

	next := mood.DefaultSettings()
	if found {
		next = merge(next, raw, s.logger)
	}

	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()
	return nil
}

func merge(base mood.Settings, raw stored, logger *zap.Logger) mood.Settings {
	if raw.DarkMode != nil {
		base.DarkMode = *raw.DarkMode
	}
	if raw.NotificationsEnabled != nil {
		base.NotificationsEnabled = *raw.NotificationsEnabled
	}
	if raw.Language != nil {
		if lang, ok := mood.ParseLanguage(*raw.Language); ok {
			base.Language = lang
		} else {
			logger.Warn("unknown stored language, reset to default", zap.String("language", *raw.Language))
		}
	}
	return base
}

// Get returns the current preferences.
func (s *Service) Get() mood.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update changes a single field and persists the whole object.
// Bool fields accept a bool or a string understood by strconv.ParseBool.
func (s *Service) Update(ctx context.Context, key string, value any) (mood.Settings, error) {
	s.mu.Lock()
	next := s.settings
	switch key {
	case KeyDarkMode:
		b, err := toBool(value)
		if err != nil {
			s.mu.Unlock()
			return next, fmt.Errorf("%s: %w", key, err)
		}
		next.DarkMode = b
	case KeyNotifications:
		b, err := toBool(value)
		if err != nil {
			s.mu.Unlock()
			return next, fmt.Errorf("%s: %w", key, err)
		}
		next.NotificationsEnabled = b
	case KeyLanguage:
		str, ok := value.(string)
		lang, valid := mood.ParseLanguage(strings.TrimSpace(str))
		if !ok || !valid {
			s.mu.Unlock()
			return next, fmt.Errorf("%s=%v: %w", key, value, ErrInvalidValue)
		}
		next.Language = lang
	default:
		s.mu.Unlock()
		return next, fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}
	s.settings = next
	s.mu.Unlock()

	if err := storage.SaveJSON(ctx, s.store, mood.SettingsKey, next); err != nil {
		s.logger.Warn("persist settings failed", zap.Error(err))
		return next, fmt.Errorf("persist settings: %w", err)
	}
	return next, nil
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("%q: %w", v, ErrInvalidValue)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%v: %w", value, ErrInvalidValue)
	}
}

package settings_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	"github.com/zhouzirui/moodmate/backend/internal/service/settings"
	"github.com/zhouzirui/moodmate/backend/internal/storage"
)

func TestLoadMissingUsesDefaults(t *testing.T) {
	svc := settings.NewService(storage.NewMemoryStore(), zaptest.NewLogger(t))
	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, mood.DefaultSettings(), svc.Get())
}

func TestLoadCorruptResetsAndClears(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, mood.SettingsKey, []byte("{not json")))

	svc := settings.NewService(store, zaptest.NewLogger(t))
	require.NoError(t, svc.Load(ctx))
	assert.Equal(t, mood.DefaultSettings(), svc.Get())

	_, err := store.Get(ctx, mood.SettingsKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, mood.SettingsKey, []byte(`{"darkMode":true,"language":"de"}`)))

	svc := settings.NewService(store, zaptest.NewLogger(t))
	require.NoError(t, svc.Load(ctx))

	got := svc.Get()
	assert.True(t, got.DarkMode)
	assert.True(t, got.NotificationsEnabled)
	assert.Equal(t, mood.English, got.Language)
}

func TestUpdatePersists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := settings.NewService(store, zaptest.NewLogger(t))

	_, err := svc.Update(ctx, settings.KeyDarkMode, true)
	require.NoError(t, err)
	_, err = svc.Update(ctx, settings.KeyNotifications, "false")
	require.NoError(t, err)
	got, err := svc.Update(ctx, settings.KeyLanguage, "it")
	require.NoError(t, err)

	want := mood.Settings{DarkMode: true, NotificationsEnabled: false, Language: mood.Italian}
	assert.Equal(t, want, got)

	raw, err := store.Get(ctx, mood.SettingsKey)
	require.NoError(t, err)
	var persisted mood.Settings
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, want, persisted)

	reloaded := settings.NewService(store, zaptest.NewLogger(t))
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, want, reloaded.Get())
}

func TestUpdateRejects(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value any
		want  error
	}{
		{name: "unknown key", key: "fontSize", value: 12, want: settings.ErrUnknownKey},
		{name: "bad bool", key: settings.KeyDarkMode, value: "maybe", want: settings.ErrInvalidValue},
		{name: "number for bool", key: settings.KeyNotifications, value: 1.0, want: settings.ErrInvalidValue},
		{name: "bad language", key: settings.KeyLanguage, value: "fr", want: settings.ErrInvalidValue},
		{name: "non string language", key: settings.KeyLanguage, value: true, want: settings.ErrInvalidValue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := settings.NewService(storage.NewMemoryStore(), zaptest.NewLogger(t))
			_, err := svc.Update(context.Background(), tc.key, tc.value)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, mood.DefaultSettings(), svc.Get())
		})
	}
}

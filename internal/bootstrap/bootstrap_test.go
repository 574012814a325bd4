package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zhouzirui/moodmate/backend/internal/config"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
)

func TestOpenStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store, err := OpenStore(ctx, config.StorageConfig{Driver: "redis", RedisAddr: mr.Addr(), RedisPrefix: "test:"})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, mood.SettingsKey, []byte(`{}`)))
	assert.True(t, mr.Exists("test:"+mood.SettingsKey))
}

func TestOpenStoreRedisUnreachable(t *testing.T) {
	_, err := OpenStore(context.Background(), config.StorageConfig{Driver: "redis", RedisAddr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestLoadPalette(t *testing.T) {
	builtin, err := LoadPalette("")
	require.NoError(t, err)
	assert.NotEmpty(t, builtin.List())

	path := filepath.Join(t.TempDir(), "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("emojis: [\"😀\", \"😢\"]\n"), 0o600))
	custom, err := LoadPalette(path)
	require.NoError(t, err)
	assert.Len(t, custom.List(), 2)
}

func TestNewOfflineRuntime(t *testing.T) {
	cfg := &config.Config{
		AI:      config.AIConfig{Provider: config.ProviderOpenAI},
		Storage: config.StorageConfig{Driver: "file", Path: t.TempDir()},
		Journal: config.JournalConfig{HistoryLimit: 10},
	}

	rt, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer rt.Close()

	assert.False(t, rt.AIEnabled)

	_, err = rt.App.Toggle("😢")
	require.NoError(t, err)
	entry, err := rt.App.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, entry.Record.AIResponse)
	assert.True(t, entry.Record.AIResponse.Complete())
}

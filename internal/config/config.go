package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Storage StorageConfig
	Journal JournalConfig
	Log     LogConfig
	// PaletteFile optionally replaces the built-in emoji grid.
	PaletteFile string
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	journal, err := loadJournalConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:      server,
		AI:          ai,
		Storage:     storage,
		Journal:     journal,
		Log:         logCfg,
		PaletteFile: strings.TrimSpace(os.Getenv("PALETTE_FILE")),
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// Supported chat model providers.
const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

const (
	defaultCompletionURL = "https://api.groq.com/openai/v1/chat/completions"
	defaultModel         = "llama-3.2-90b-text-preview"
)

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider string
	// APIKey is the bearer credential for the OpenAI-compatible endpoint.
	APIKey      string
	BaseURL     string
	Model       string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	// Timeout bounds one completion request; zero means no client-side limit.
	Timeout time.Duration

	ArkAPIKey    string
	ArkAccessKey string
	ArkSecretKey string
	ArkBaseURL   string
	ArkRegion    string
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	if c.Model == "" {
		return false
	}
	switch c.Provider {
	case ProviderArk:
		return c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != "")
	default:
		return c.APIKey != "" && c.BaseURL != ""
	}
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI))
	if provider != ProviderOpenAI && provider != ProviderArk {
		return AIConfig{}, fmt.Errorf("invalid LLM_PROVIDER value %q", provider)
	}

	temperature, err := parseOptionalFloatEnv("LLM_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}
	if temperature == nil {
		temperature = floatPtr(0.7)
	}

	topP, err := parseOptionalFloatEnv("LLM_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}
	if topP == nil {
		topP = floatPtr(1)
	}

	maxTokens, err := parseOptionalIntEnv("LLM_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}
	if maxTokens == nil {
		maxTokens = intPtr(150)
	}

	timeout, err := parseDurationEnv("LLM_TIMEOUT", 0)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		Provider:     provider,
		APIKey:       strings.TrimSpace(os.Getenv("LLM_API_KEY")),
		BaseURL:      getEnvOrDefault("LLM_BASE_URL", defaultCompletionURL),
		Model:        getEnvOrDefault("LLM_MODEL", defaultModel),
		Temperature:  temperature,
		TopP:         topP,
		MaxTokens:    maxTokens,
		Timeout:      timeout,
		ArkAPIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkAccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		ArkSecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		ArkBaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
	}, nil
}

// StorageConfig 描述持久化驱动配置。
type StorageConfig struct {
	Driver        string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

func loadStorageConfig() (StorageConfig, error) {
	driver := strings.ToLower(getEnvOrDefault("STORE_DRIVER", "file"))

	path := strings.TrimSpace(os.Getenv("STORE_PATH"))
	if path == "" {
		switch driver {
		case "sqlite":
			path = filepath.Join(".moodmate", "moodmate.db")
		default:
			path = ".moodmate"
		}
	}

	redisDB := 0
	if db, err := parseOptionalIntEnv("REDIS_DB"); err != nil {
		return StorageConfig{}, err
	} else if db != nil {
		redisDB = *db
	}

	cfg := StorageConfig{
		Driver:        driver,
		Path:          path,
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		RedisPrefix:   getEnvOrDefault("REDIS_PREFIX", "moodmate:"),
	}

	switch cfg.Driver {
	case "memory", "file", "sqlite", "redis":
		return cfg, nil
	default:
		return StorageConfig{}, fmt.Errorf("invalid STORE_DRIVER value %q", cfg.Driver)
	}
}

// JournalConfig 描述情绪日志配置。
type JournalConfig struct {
	HistoryLimit int
}

func loadJournalConfig() (JournalConfig, error) {
	limit := 10
	if override, err := parseOptionalIntEnv("HISTORY_LIMIT"); err != nil {
		return JournalConfig{}, err
	} else if override != nil {
		if *override < 1 {
			limit = 1
		} else {
			limit = *override
		}
	}
	return JournalConfig{HistoryLimit: limit}, nil
}

// LogConfig 描述日志输出配置。
type LogConfig struct {
	Level       string
	Format      string
	Development bool
}

func loadLogConfig() (LogConfig, error) {
	development, err := parseBoolEnv("LOG_DEVELOPMENT", false)
	if err != nil {
		return LogConfig{}, err
	}
	return LogConfig{
		Level:       strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Format:      strings.ToLower(getEnvOrDefault("LOG_FORMAT", "console")),
		Development: development,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

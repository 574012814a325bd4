package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/zhouzirui/moodmate/backend/internal/config"
)

// NewChatModel 使用配置创建一个模型实例。
func NewChatModel(ctx context.Context, cfg config.AIConfig) (model.BaseChatModel, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%s 凭证或模型配置缺失", cfg.Provider)
	}

	temperature := toFloat32(cfg.Temperature)
	topP := toFloat32(cfg.TopP)

	var maxTokens *int
	if cfg.MaxTokens != nil {
		val := *cfg.MaxTokens
		maxTokens = &val
	}

	if cfg.Provider == config.ProviderArk {
		arkCfg := &ark.ChatModelConfig{
			BaseURL:     cfg.ArkBaseURL,
			Region:      cfg.ArkRegion,
			APIKey:      cfg.ArkAPIKey,
			AccessKey:   cfg.ArkAccessKey,
			SecretKey:   cfg.ArkSecretKey,
			Model:       cfg.Model,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			TopP:        topP,
		}
		chatModel, err := ark.NewChatModel(ctx, arkCfg)
		if err != nil {
			return nil, fmt.Errorf("create ark chat model: %w", err)
		}
		return chatModel, nil
	}

	chatModel, err := NewCompletionModel(CompletionConfig{
		URL:         cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create completion model: %w", err)
	}
	return chatModel, nil
}

func toFloat32(v *float64) *float32 {
	if v == nil {
		return nil
	}
	val := float32(*v)
	return &val
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// CompletionConfig configures an OpenAI-compatible chat completion endpoint.
type CompletionConfig struct {
	// URL is the full chat completions endpoint, e.g. https://api.groq.com/openai/v1/chat/completions.
	URL         string
	APIKey      string
	Model       string
	Temperature *float32
	TopP        *float32
	MaxTokens   *int
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// CompletionModel is an eino chat model speaking the OpenAI chat completion wire format.
type CompletionModel struct {
	client      *http.Client
	url         string
	apiKey      string
	model       string
	temperature *float32
	topP        *float32
	maxTokens   *int
}

var _ model.BaseChatModel = (*CompletionModel)(nil)

// NewCompletionModel validates cfg and returns a ready model.
func NewCompletionModel(cfg CompletionConfig) (*CompletionModel, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("completion url is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("completion api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("completion model is required")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &CompletionModel{
		client:      client,
		url:         cfg.URL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature *float32            `json:"temperature,omitempty"`
	MaxTokens   *int                `json:"max_tokens,omitempty"`
	TopP        *float32            `json:"top_p,omitempty"`
	Stream      bool                `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends one non-streaming completion request.
func (m *CompletionModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{
		Model:       &m.model,
		Temperature: m.temperature,
		TopP:        m.topP,
		MaxTokens:   m.maxTokens,
	}, opts...)

	req := completionRequest{
		Model:       m.model,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		TopP:        options.TopP,
		Stream:      false,
	}
	if options.Model != nil && *options.Model != "" {
		req.Model = *options.Model
	}
	for _, msg := range input {
		if msg == nil {
			continue
		}
		req.Messages = append(req.Messages, completionMessage{Role: string(msg.Role), Content: msg.Content})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", truncate(string(payload), 256))}
	}

	var decoded completionResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode completion envelope: %w", err)}
	}
	if len(decoded.Choices) == 0 {
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: errors.New("completion returned no choices")}
	}

	return schema.AssistantMessage(decoded.Choices[0].Message.Content, nil), nil
}

// Stream wraps Generate; the endpoint is always called with stream=false.
func (m *CompletionModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	"github.com/zhouzirui/moodmate/backend/internal/prompt"
)

var errEmptyReply = errors.New("empty completion reply")

// Service turns an emoji selection into a suggestion through an eino chain.
type Service struct {
	builder *prompt.Builder
	chains  map[mood.Language]compose.Runnable[map[string]any, *schema.Message]
	logger  *zap.Logger
}

// NewService compiles one chain per supported language. chatModel may be nil,
// in which case Fetch reports ErrUnavailable and Suggest answers offline.
func NewService(ctx context.Context, chatModel model.BaseChatModel, builder *prompt.Builder, logger *zap.Logger) (*Service, error) {
	if builder == nil {
		builder = prompt.NewBuilder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := &Service{
		builder: builder,
		logger:  logger.Named("ai"),
	}
	if chatModel == nil {
		return svc, nil
	}

	svc.chains = make(map[mood.Language]compose.Runnable[map[string]any, *schema.Message], 2)
	for _, lang := range []mood.Language{mood.English, mood.Italian} {
		chain := compose.NewChain[map[string]any, *schema.Message]()
		chain.AppendChatTemplate(builder.Template(lang))
		chain.AppendChatModel(chatModel)

		runnable, err := chain.Compile(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compile suggestion chain (%s): %w", lang, err)
		}
		svc.chains[lang] = runnable
	}

	return svc, nil
}

// Enabled reports whether a chat model is wired in.
func (s *Service) Enabled() bool {
	return s != nil && len(s.chains) > 0
}

func (s *Service) chain(lang mood.Language) compose.Runnable[map[string]any, *schema.Message] {
	if runnable, ok := s.chains[lang]; ok {
		return runnable
	}
	return s.chains[mood.English]
}

// Fetch performs exactly one completion call and returns a typed error on failure.
func (s *Service) Fetch(ctx context.Context, tokens []string, lang mood.Language) (mood.Suggestion, error) {
	vars, err := prompt.Variables(tokens)
	if err != nil {
		return mood.Suggestion{}, err
	}
	if !s.Enabled() {
		return mood.Suggestion{}, ErrUnavailable
	}

	msg, err := s.chain(lang).Invoke(ctx, vars)
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			return mood.Suggestion{}, netErr
		}
		return mood.Suggestion{}, &NetworkError{Err: err}
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return mood.Suggestion{}, &ParseError{Err: errEmptyReply}
	}

	result, err := parseSuggestion(msg.Content)
	if err != nil {
		return mood.Suggestion{}, &ParseError{Content: msg.Content, Err: err}
	}

	s.logger.Debug("generated suggestion",
		zap.String("language", string(lang)),
		zap.Int("tokens", len(tokens)),
		zap.Int("length", len(msg.Content)),
	)
	return result, nil
}

// Suggest never fails: any error is mapped to a displayable suggestion.
func (s *Service) Suggest(ctx context.Context, tokens []string, lang mood.Language) mood.Suggestion {
	result, err := s.Fetch(ctx, tokens, lang)
	if err == nil {
		return result
	}

	if errors.Is(err, ErrUnavailable) {
		return OfflineSuggestion(tokens, lang)
	}

	var parseErr *ParseError
	switch {
	case errors.As(err, &parseErr):
		s.logger.Warn("suggestion reply parse failed, use fallback",
			zap.Error(err),
			zap.String("content", truncate(parseErr.Content, 200)),
		)
	default:
		s.logger.Warn("suggestion request failed, use fallback", zap.Error(err))
	}
	return Fallback(lang)
}

func parseSuggestion(content string) (mood.Suggestion, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return mood.Suggestion{}, errors.New("reply does not contain a JSON object")
	}

	var result mood.Suggestion
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &result); err != nil {
		return mood.Suggestion{}, fmt.Errorf("decode suggestion: %w", err)
	}

	result.Message = strings.TrimSpace(result.Message)
	result.Suggestion = strings.TrimSpace(result.Suggestion)
	if !result.Complete() {
		return mood.Suggestion{}, errors.New("reply is missing message or suggestion")
	}
	return result, nil
}

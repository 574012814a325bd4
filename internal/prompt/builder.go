// Package prompt turns an emoji selection into the completion request text.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
)

// ErrNoTokens is returned when a prompt is requested for an empty selection.
var ErrNoTokens = errors.New("at least one emoji is required")

const englishTemplate = "Based on the following emojis representing the user's current emotions: {emojis}, " +
	"provide a short message of understanding (1-2 sentences) and a suggestion for an activity to improve " +
	"their mood (1 sentence). Format the response as a JSON object with 'message' and 'suggestion' fields. " +
	"IMPORTANT JSON! NO OTHER TEXT!"

const italianTemplate = "Osserva il gruppo di emoji che rappresenta le emozioni attuali dell'utente: {emojis}. " +
	"Interpreta questo gruppo come un insieme unico per dedurre l'emozione generale o l'atmosfera che potrebbe " +
	"riflettere, senza analizzare ogni emoji singolarmente. Fornisci un breve messaggio di comprensione (1-2 frasi) " +
	"che rifletta questa interpretazione complessiva e suggerisci un'attività specifica, creativa o particolare " +
	"che possa migliorare il loro umore. Formatta il risultato come un oggetto JSON con i campi 'message' e " +
	"'suggestion'. IMPORTANT JSON! NO OTHER TEXT!"

// Builder holds one compiled chat template per language.
type Builder struct {
	templates map[mood.Language]einoprompt.ChatTemplate
}

// NewBuilder creates a builder with the English and Italian templates.
func NewBuilder() *Builder {
	return &Builder{
		templates: map[mood.Language]einoprompt.ChatTemplate{
			mood.English: einoprompt.FromMessages(schema.FString, schema.UserMessage(englishTemplate)),
			mood.Italian: einoprompt.FromMessages(schema.FString, schema.UserMessage(italianTemplate)),
		},
	}
}

// Template returns the chat template for lang. Unknown tags use English.
func (b *Builder) Template(lang mood.Language) einoprompt.ChatTemplate {
	if tpl, ok := b.templates[lang]; ok {
		return tpl
	}
	return b.templates[mood.English]
}

// Variables returns the template input for a selection.
func Variables(tokens []string) (map[string]any, error) {
	cleaned := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok = strings.TrimSpace(tok); tok != "" {
			cleaned = append(cleaned, tok)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoTokens
	}
	return map[string]any{"emojis": strings.Join(cleaned, " ")}, nil
}

// Messages renders the prompt as a single user message conversation.
func (b *Builder) Messages(ctx context.Context, tokens []string, lang mood.Language) ([]*schema.Message, error) {
	vars, err := Variables(tokens)
	if err != nil {
		return nil, err
	}

	msgs, err := b.Template(lang).Format(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("format prompt: %w", err)
	}
	return msgs, nil
}

// Build renders the prompt text for tokens in lang.
func (b *Builder) Build(ctx context.Context, tokens []string, lang mood.Language) (string, error) {
	msgs, err := b.Messages(ctx, tokens, lang)
	if err != nil {
		return "", err
	}
	if len(msgs) == 0 {
		return "", fmt.Errorf("format prompt: template produced no messages")
	}
	return msgs[0].Content, nil
}

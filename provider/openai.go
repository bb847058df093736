package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/TravanaHQ/localizer"
	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend translates via an OpenAI chat model. Unlike DeepL it covers
// every catalog locale, so it is the backend of choice for the long-tail
// languages the marketing team publishes.
type OpenAIBackend struct {
	client      *openai.Client
	model       string
	temperature float32
	configured  bool
}

// OpenAIConfig holds configuration for the OpenAI backend.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key (uses OPENAI_API_KEY env var if empty)
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIBackend creates an OpenAI backend. A missing key keeps the
// backend constructible; translate calls then report a configuration error.
func NewOpenAIBackend(cfg OpenAIConfig) *OpenAIBackend {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}

	config := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIBackend{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
		configured:  key != "",
	}
}

// Name implements Backend.
func (b *OpenAIBackend) Name() string {
	return "openai"
}

// SupportsLocale implements Backend. The model translates into any catalog
// locale.
func (b *OpenAIBackend) SupportsLocale(locale string) bool {
	_, ok := localizer.LanguageNames[localizer.BaseLocale(locale)]
	return ok
}

// Translate implements Backend via a single chat completion per batch.
func (b *OpenAIBackend) Translate(ctx context.Context, req BatchRequest) ([]string, error) {
	if !b.configured {
		return nil, &localizer.ConfigError{Message: "OPENAI_API_KEY not set"}
	}
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	userMessage, _ := json.Marshal(req.Texts)

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: b.systemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: string(userMessage)},
		},
		Temperature: b.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &localizer.TransportError{
			Message:   "openai chat completion failed",
			Cause:     err,
			Retryable: isRetryableMessage(err.Error()),
		}
	}
	if len(resp.Choices) == 0 {
		return nil, &localizer.TransportError{Message: "empty response from openai", Retryable: true}
	}

	return parseTranslations(resp.Choices[0].Message.Content, len(req.Texts))
}

// Usage implements Backend. OpenAI reports no character quota.
func (b *OpenAIBackend) Usage(ctx context.Context) (*localizer.Usage, error) {
	return nil, nil
}

func (b *OpenAIBackend) systemPrompt(req BatchRequest) string {
	targetName := localizer.GetLanguageName(req.TargetLang)
	sourceName := localizer.GetLanguageName(req.SourceLang)

	prompt := fmt.Sprintf(`You are an expert native translator for a travel and real-estate marketing site.
Translate the provided texts from %s into idiomatic %s.

Rules:
- Keep the persuasive, engaging register of marketing copy.
- Do NOT translate HTML tags, attributes, URLs, or email addresses.
- Preserve meaningful whitespace and punctuation conventions of %s.
- Never translate place names used as proper nouns (Dubai, Palm Jumeirah).

Return a valid JSON object with a single key "translations" containing an
array of strings in the exact same order as the input.
Example: { "translations": ["translated string 1", "translated string 2"] }`,
		sourceName, targetName, targetName)

	if req.Markup {
		prompt += "\n\nSome inputs contain inline HTML. Translate only the text content and keep every tag exactly as it appears."
	}
	return prompt
}

func parseTranslations(content string, expected int) ([]string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if arr, ok := obj["translations"].([]any); ok {
			return toStringSlice(arr, expected)
		}
		for _, v := range obj {
			if arr, ok := v.([]any); ok {
				return toStringSlice(arr, expected)
			}
		}
	}

	var arr []any
	if err := json.Unmarshal([]byte(content), &arr); err == nil {
		return toStringSlice(arr, expected)
	}

	return nil, &localizer.TransportError{Message: "invalid response format from openai"}
}

func toStringSlice(arr []any, expected int) ([]string, error) {
	out := make([]string, len(arr))
	for i, v := range arr {
		if s, ok := v.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprintf("%v", v)
		}
	}
	if len(out) != expected {
		return nil, &localizer.CountMismatchError{Expected: expected, Got: len(out)}
	}
	return out, nil
}

func isRetryableMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, pattern := range []string{"rate limit", "timeout", "connection refused", "429", "500", "502", "503"} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

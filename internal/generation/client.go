// Package generation wraps the generative-language API used for bulk word
// generation and the conversational quiz. Calls are single-attempt: there
// is no retry or backoff layer, matching the rest of the system's
// collaborator handling.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/kotoba-app/kotoba-backend/internal/config"
	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

// WordDraft is one generated vocabulary record. The caller fills in id,
// status, and creation time before persisting.
type WordDraft struct {
	English      string           `json:"english"`
	Meaning      string           `json:"meaning"`
	CoreImage    string           `json:"core_image"`
	Category     string           `json:"category"`
	PartOfSpeech []string         `json:"part_of_speech"`
	ToeicLevel   int              `json:"toeic_level"`
	Examples     []ExampleDraft   `json:"examples"`
}

// ExampleDraft is one generated usage example.
type ExampleDraft struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// Client calls the generative-language API.
type Client struct {
	log   *slog.Logger
	api   anthropic.Client
	model string
}

// NewClient creates a generation client from configuration. A missing API
// key is a configuration error detected eagerly, not a silent no-op later.
func NewClient(logger *slog.Logger, cfg config.GenerationConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generation: %w: api key is not configured", domain.ErrValidation)
	}
	return &Client{
		log:   logger.With("component", "generation"),
		api:   anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model: cfg.Model,
	}, nil
}

// GenerateWords produces one structured draft per input word, with meanings
// and example translations in the target language.
func (c *Client) GenerateWords(ctx context.Context, words []string, language string) ([]WordDraft, error) {
	prompt := buildGeneratePrompt(words, language)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generation api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("generation: empty response")
	}

	jsonStr, err := extractJSONArray(msg.Content[0].Text)
	if err != nil {
		return nil, fmt.Errorf("generation: %w", err)
	}

	var drafts []WordDraft
	if err := json.Unmarshal([]byte(jsonStr), &drafts); err != nil {
		return nil, fmt.Errorf("generation: decode response: %w", err)
	}

	c.log.Info("words generated", slog.Int("requested", len(words)), slog.Int("received", len(drafts)))
	return drafts, nil
}

// Turn is one prior exchange in a quiz conversation.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
}

// Converse sends a quiz conversation plus the latest user utterance and
// returns the assistant's graded reply. The reply's leading token encodes
// the verdict; see ParseVerdict.
func (c *Client) Converse(ctx context.Context, history []Turn, utterance string, language string) (string, error) {
	msgs := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, t := range history {
		if t.Role == "assistant" {
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Text)))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Text)))
		}
	}
	msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(utterance)))

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: buildQuizSystemPrompt(language)},
		},
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("quiz api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("quiz: empty response")
	}

	return strings.TrimSpace(msg.Content[0].Text), nil
}

// extractJSONArray finds the first complete JSON array in a string and
// verifies it parses.
func extractJSONArray(s string) (string, error) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON array found in response")
	}
	out := s[start : end+1]
	if !json.Valid([]byte(out)) {
		return "", fmt.Errorf("response does not contain valid JSON")
	}
	return out, nil
}

package openaiadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"adforge/internal/config/configs"
	"adforge/internal/core/port"
)

// finishReasonLength is the provider's stop reason for responses cut off by
// the token budget.
const finishReasonLength = "length"

// reasoningPrefixes mark model families that only accept a completion-token
// budget and run at a fixed sampling temperature.
var reasoningPrefixes = []string{"o1", "o3", "o4", "gpt-5"}

// Client implements port.CompletionClient over the OpenAI chat-completions
// API. It normalizes model-family differences: reasoning families get the
// completion-token-budget parameter and no temperature override, standard
// chat families get the generation-token-budget parameter plus the configured
// temperature. Outbound calls pass through an optional process-wide rate
// limiter.
type Client struct {
	cfg     configs.OpenAI
	logger  *slog.Logger
	limiter *rate.Limiter
}

// NewClient creates a completion client. A zero RequestsPerMinute disables
// the limiter.
func NewClient(cfg configs.OpenAI, logger *slog.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}
	return &Client{cfg: cfg, logger: logger, limiter: limiter}
}

// Complete performs one blocking chat-completion call and returns the
// normalized result. The credential travels with the request so user-supplied
// keys take precedence over the environment-level one.
func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (port.CompletionResult, error) {
	if req.Credential == "" {
		return port.CompletionResult{}, port.ErrMissingCredential
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return port.CompletionResult{}, err
		}
	}

	opts := []option.RequestOption{option.WithAPIKey(req.Credential)}
	if c.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: toMessages(req.Messages),
	}
	if req.MaxTokens > 0 {
		if IsReasoningModel(req.Model) {
			params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
		} else {
			params.MaxTokens = openai.Int(int64(req.MaxTokens))
		}
	}
	if !IsReasoningModel(req.Model) {
		params.Temperature = openai.Float(req.Temperature)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return port.CompletionResult{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return port.CompletionResult{}, port.ErrEmptyCompletion
	}
	choice := resp.Choices[0]
	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return port.CompletionResult{}, port.ErrEmptyCompletion
	}

	result := port.CompletionResult{
		Text:       text,
		Truncated:  string(choice.FinishReason) == finishReasonLength,
		TokensUsed: int(resp.Usage.CompletionTokens),
	}
	c.logger.Debug("completion finished",
		slog.String("model", req.Model),
		slog.Int("completion_tokens", result.TokensUsed),
		slog.Bool("truncated", result.Truncated),
	)
	return result, nil
}

// IsReasoningModel reports whether the model belongs to a reasoning family.
// Matching is by id prefix, so versioned ids like "o3-mini" are covered.
func IsReasoningModel(model string) bool {
	m := strings.ToLower(strings.TrimSpace(model))
	for _, prefix := range reasoningPrefixes {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

func toMessages(msgs []port.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case port.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case port.RoleAssistant:
			out = append(out, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

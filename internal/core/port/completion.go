package port

import (
	"context"
	"errors"
)

// ErrMissingCredential is returned when neither the request nor the
// environment supplies an API credential. No provider call is attempted.
var ErrMissingCredential = errors.New("missing API credential")

// ErrEmptyCompletion is returned when the provider answers without any text.
var ErrEmptyCompletion = errors.New("completion provider returned an empty response")

// Chat message roles understood by completion providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one message in a completion conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// CompletionRequest carries one prompt to the provider. MaxTokens is the
// completion budget; the adapter maps it onto whichever token-limit parameter
// the model family accepts. Temperature is applied only to families that
// support sampling overrides.
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
	Credential  string
}

// CompletionResult is the provider's normalized answer. Truncated is true
// when the response stopped because it hit the token budget rather than a
// natural stop.
type CompletionResult struct {
	Text       string
	Truncated  bool
	TokensUsed int
}

// CompletionClient is the outbound port to a text-completion provider. It is
// an outbound port in hexagonal architecture; the regeneration loop depends
// only on this interface so it can be tested with a stub.
type CompletionClient interface {
	// Complete performs one blocking completion call. It returns
	// ErrEmptyCompletion when the provider produced no text and
	// ErrMissingCredential when the request carries no credential.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)
}

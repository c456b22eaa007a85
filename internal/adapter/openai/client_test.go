package openaiadapter

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"adforge/internal/config/configs"
	"adforge/internal/core/port"
)

func TestIsReasoningModel(t *testing.T) {
	cases := []struct {
		model string
		want  bool
	}{
		{"o1", true},
		{"o1-mini", true},
		{"o3-mini-2025-01-31", true},
		{"o4-mini", true},
		{"gpt-5", true},
		{"GPT-5-mini", true},
		{"gpt-4o", false},
		{"gpt-4o-mini", false},
		{"gpt-4.1", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsReasoningModel(tc.model); got != tc.want {
			t.Fatalf("IsReasoningModel(%q) = %v, want %v", tc.model, got, tc.want)
		}
	}
}

func TestCompleteRequiresCredential(t *testing.T) {
	c := NewClient(configs.OpenAI{}, slog.Default())
	_, err := c.Complete(context.Background(), port.CompletionRequest{
		Model:    "gpt-4o",
		Messages: []port.ChatMessage{{Role: port.RoleUser, Content: "hi"}},
	})
	if !errors.Is(err, port.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestToMessagesRoles(t *testing.T) {
	msgs := toMessages([]port.ChatMessage{
		{Role: port.RoleSystem, Content: "s"},
		{Role: port.RoleUser, Content: "u"},
		{Role: port.RoleAssistant, Content: "a"},
	})
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].OfSystem == nil {
		t.Fatalf("first message should be a system message")
	}
	if msgs[1].OfUser == nil {
		t.Fatalf("second message should be a user message")
	}
	if msgs[2].OfAssistant == nil {
		t.Fatalf("third message should be an assistant message")
	}
}

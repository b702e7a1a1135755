package usecase

import (
	"context"

	"github.com/tasknest/backend/domain"
)

// FallbackReply is what a gateway returns when the provider answers
// successfully but yields no usable text.
const FallbackReply = "I couldn't generate a response. Please try again."

// Completion is a provider-neutral completion request: a system prompt, an
// ordered conversation and a token budget.
type Completion struct {
	System    string
	Messages  []domain.ChatMessage
	MaxTokens int
}

// CompletionGateway abstracts the generative-AI provider so it can be swapped
// without touching task or note logic. Implementations translate the neutral
// message list into the provider's wire format and return the reply text.
type CompletionGateway interface {
	Complete(ctx context.Context, req Completion) (string, error)
}

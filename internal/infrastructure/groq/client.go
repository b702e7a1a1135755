package groq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/tasknest/backend/domain"
	"github.com/tasknest/backend/usecase"
)

// The service originally ran against Groq before its Gemini swap; this
// driver keeps that provider available behind the same gateway port.

const defaultBaseURL = "https://api.groq.com/openai/v1"

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
}

// Client is an OpenAI-compatible chat-completions gateway pointed at the
// Groq endpoint. It implements usecase.CompletionGateway.
type Client struct {
	cfg    Config
	api    openai.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		api: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithMaxRetries(cfg.MaxRetries),
		),
		logger: logger,
	}
}

// Configured reports whether a usable credential is present.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

func (c *Client) Complete(ctx context.Context, req usecase.Completion) (string, error) {
	if !c.Configured() {
		return "", domain.ErrAINotConfigured
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, msg := range req.Messages {
		if msg.Role == domain.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(msg.Content))
			continue
		}
		messages = append(messages, openai.UserMessage(msg.Content))
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.cfg.Model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", domain.WrapError(domain.ErrCodeUpstream,
				fmt.Sprintf("AI provider error (%d)", apiErr.StatusCode), err)
		}
		return "", domain.WrapError(domain.ErrCodeUpstream, "AI request failed", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return usecase.FallbackReply, nil
	}
	return resp.Choices[0].Message.Content, nil
}

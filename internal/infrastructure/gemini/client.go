package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasknest/backend/domain"
	"github.com/tasknest/backend/usecase"
)

// placeholderKey is the sentinel some deployments ship instead of a real
// credential; it is treated the same as an empty key.
const placeholderKey = "YOUR_GEMINI_API_KEY_HERE"

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int           // additional attempts after the first, on 429 only
	RetryDelay time.Duration // backoff unit; attempt n sleeps n*RetryDelay
}

// Client calls the Gemini generateContent endpoint, translating the neutral
// completion request into Gemini's content format. It implements
// usecase.CompletionGateway.
type Client struct {
	cfg    Config
	http   *fasthttp.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &fasthttp.Client{},
		logger: logger,
	}
}

// Configured reports whether a usable credential is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.APIKey != placeholderKey
}

type part struct {
	Text string `json:"text,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete issues the completion call. Rate-limit responses are retried up
// to MaxRetries extra times with linearly growing sleeps; any other failure
// surfaces immediately with the upstream status and body attached.
func (c *Client) Complete(ctx context.Context, req usecase.Completion) (string, error) {
	if !c.Configured() {
		return "", domain.ErrAINotConfigured
	}

	payload, err := json.Marshal(c.translate(req))
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "encoding AI request", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

	for attempt := 0; ; attempt++ {
		status, body, err := c.post(url, payload)
		if err != nil {
			return "", domain.WrapError(domain.ErrCodeUpstream, "AI request failed", err)
		}

		switch {
		case status == fasthttp.StatusOK:
			return c.extractText(body)
		case status == fasthttp.StatusTooManyRequests && attempt < c.cfg.MaxRetries:
			wait := time.Duration(attempt+1) * c.cfg.RetryDelay
			c.logger.Warn("rate limited by AI provider, backing off",
				zap.Duration("wait", wait),
				zap.Int("attempt", attempt+1))
			time.Sleep(wait)
		default:
			return "", domain.WrapError(domain.ErrCodeUpstream,
				fmt.Sprintf("AI provider error (%d)", status),
				errors.New(string(body)))
		}
	}
}

func (c *Client) translate(req usecase.Completion) generateRequest {
	out := generateRequest{
		GenerationConfig: generationConfig{
			MaxOutputTokens: req.MaxTokens,
			Temperature:     0.7,
		},
	}
	if req.System != "" {
		out.SystemInstruction = &content{Parts: []part{{Text: req.System}}}
	}
	for _, msg := range req.Messages {
		role := "user"
		if msg.Role == domain.RoleAssistant {
			role = "model"
		}
		out.Contents = append(out.Contents, content{
			Role:  role,
			Parts: []part{{Text: msg.Content}},
		})
	}
	return out
}

func (c *Client) post(url string, payload []byte) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	if err := c.http.DoTimeout(req, resp, c.cfg.Timeout); err != nil {
		return 0, nil, err
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return resp.StatusCode(), body, nil
}

// extractText pulls the reply out of the first candidate, keeping only the
// last text part (earlier parts can be model thinking).
func (c *Client) extractText(body []byte) (string, error) {
	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", domain.WrapError(domain.ErrCodeUpstream, "decoding AI response", err)
	}
	if len(parsed.Candidates) == 0 {
		return usecase.FallbackReply, nil
	}

	text := ""
	for _, p := range parsed.Candidates[0].Content.Parts {
		if p.Text != "" {
			text = p.Text
		}
	}
	if text == "" {
		return usecase.FallbackReply, nil
	}
	return text, nil
}

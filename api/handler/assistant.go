package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasknest/backend/api/transport"
	"github.com/tasknest/backend/domain"
	"github.com/tasknest/backend/pkg/httpcontext"
	assistantUC "github.com/tasknest/backend/usecase/assistant"
)

type AssistantHandler struct {
	baseHandler
	uc *assistantUC.UseCase
}

// NewAssistantHandler builds the handler for the AI endpoints. The adapter
// here should carry the AI-call timeout, which has to cover retry backoff
// sleeps on top of the socket timeout.
func NewAssistantHandler(uc *assistantUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary AI recommendations for a task
// @Tags ai
// @Router /tasks/{id}/ai-recommend [post]
func (h *AssistantHandler) Recommend(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	recommendation, err := h.uc.Recommend(stdCtx, h.taskID(ctx))
	if err != nil {
		h.respondAIError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.RecommendationResponse{Recommendation: recommendation})
}

// @Summary AI chat with task context
// @Tags ai
// @Router /chat [post]
func (h *AssistantHandler) Chat(ctx *fasthttp.RequestCtx) {
	var req transport.ChatRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondBadRequest(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.Chat(stdCtx, req.Message, req.History)
	if err != nil {
		h.respondAIError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.ChatResponse{Reply: reply})
}

// respondAIError keeps 400/404 semantics but wraps everything upstream or
// misconfigured in the AI error surface.
func (h *AssistantHandler) respondAIError(ctx *fasthttp.RequestCtx, err error) {
	if domain.IsDomainError(err, domain.ErrCodeInvalid) || domain.IsDomainError(err, domain.ErrCodeNotFound) {
		h.respondError(ctx, err)
		return
	}
	h.logger.Error("AI call failed", zap.Error(err))
	h.respondJSON(ctx, http.StatusInternalServerError,
		transport.ErrorResponse{Error: "AI service error: " + err.Error()})
}

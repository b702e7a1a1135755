package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasknest/backend/pkg/httpcontext"
	"github.com/tasknest/backend/repository/memory"
)

// GatewayStatus lets the health endpoint report whether AI calls can work
// without importing a concrete provider client.
type GatewayStatus interface {
	Configured() bool
}

type HealthHandler struct {
	baseHandler
	store   *memory.Store
	gateway GatewayStatus
	started time.Time
}

func NewHealthHandler(store *memory.Store, gateway GatewayStatus, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
		gateway:     gateway,
		started:     time.Now().UTC(),
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	tasks, notes := h.store.Counts()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"storage": map[string]interface{}{
			"tasks": tasks,
			"notes": notes,
		},
		"ai": map[string]interface{}{
			"configured": h.gateway != nil && h.gateway.Configured(),
		},
	}
	h.respondJSON(ctx, http.StatusOK, payload)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasknest/backend/api/transport"
	"github.com/tasknest/backend/pkg/httpcontext"
	noteUC "github.com/tasknest/backend/usecase/note"
)

type NoteHandler struct {
	baseHandler
	uc *noteUC.UseCase
}

func NewNoteHandler(uc *noteUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List a task's notes
// @Tags notes
// @Router /tasks/{id}/notes [get]
func (h *NoteHandler) ListNotes(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	notes, err := h.uc.ListNotes(stdCtx, h.taskID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, notes)
}

// @Summary Add a progress note
// @Tags notes
// @Router /tasks/{id}/notes [post]
func (h *NoteHandler) AddNote(ctx *fasthttp.RequestCtx) {
	var req transport.NoteCreateRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondBadRequest(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.AddNote(stdCtx, h.taskID(ctx), noteUC.AddNoteInput{
		Content:      req.Content,
		MarkComplete: req.MarkComplete,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, created)
}

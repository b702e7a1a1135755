package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/tasknest/backend/api/handler"
	"github.com/tasknest/backend/internal/router"
	"github.com/tasknest/backend/pkg/httpcontext"
	"github.com/tasknest/backend/repository/memory"
	"github.com/tasknest/backend/usecase"
	assistantUC "github.com/tasknest/backend/usecase/assistant"
	noteUC "github.com/tasknest/backend/usecase/note"
	profileUC "github.com/tasknest/backend/usecase/profile"
	taskUC "github.com/tasknest/backend/usecase/task"
)

type stubGateway struct {
	reply string
	err   error
}

func (g *stubGateway) Complete(_ context.Context, _ usecase.Completion) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *stubGateway) Configured() bool { return true }

func newHandler(t *testing.T, gateway *stubGateway) fasthttp.RequestHandler {
	t.Helper()

	store := memory.NewStore()
	tasks := memory.NewTaskRepository(store)
	notes := memory.NewNoteRepository(store)
	chatLog := memory.NewChatLogRepository(store)

	adapter := httpcontext.NewAdapter(5 * time.Second)
	taskUseCase := taskUC.New(tasks, notes, nil)
	noteUseCase := noteUC.New(tasks, notes, nil)
	assistantUseCase := assistantUC.New(tasks, notes, chatLog, gateway, assistantUC.Config{}, nil)
	profileUseCase := profileUC.New(memory.NewProfileRepository(store), taskUseCase, nil)

	r := router.New(router.Handlers{
		Task:      apiHandler.NewTaskHandler(taskUseCase, adapter, nil),
		Note:      apiHandler.NewNoteHandler(noteUseCase, adapter, nil),
		Assistant: apiHandler.NewAssistantHandler(assistantUseCase, adapter, nil),
		Profile:   apiHandler.NewProfileHandler(profileUseCase, adapter, nil),
		Health:    apiHandler.NewHealthHandler(store, gateway, adapter, nil),
	})
	return r.Handler
}

func perform(t *testing.T, h fasthttp.RequestHandler, method, uri string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := performRaw(t, h, method, uri, body)
	var parsed map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return status, parsed
}

func performRaw(t *testing.T, h fasthttp.RequestHandler, method, uri string, body any) (int, []byte) {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	h(&ctx)

	out := make([]byte, len(ctx.Response.Body()))
	copy(out, ctx.Response.Body())
	return ctx.Response.StatusCode(), out
}

func createTask(t *testing.T, h fasthttp.RequestHandler, body map[string]any) map[string]any {
	t.Helper()
	status, task := perform(t, h, http.MethodPost, "/tasks", body)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, task["id"])
	return task
}

func TestCreateAndGetTask(t *testing.T) {
	h := newHandler(t, &stubGateway{})

	created := createTask(t, h, map[string]any{"title": "  Write docs  ", "description": "intro"})
	assert.Equal(t, "Write docs", created["title"])
	assert.Equal(t, "pending", created["status"])

	status, fetched := perform(t, h, http.MethodGet, "/tasks/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, created["id"], fetched["id"])
	assert.Equal(t, float64(0), fetched["notesCount"])
}

func TestGetTaskNotFound(t *testing.T) {
	h := newHandler(t, &stubGateway{})

	status, body := perform(t, h, http.MethodGet, "/tasks/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Task not found", body["error"])
}

func TestCreateTaskValidation(t *testing.T) {
	h := newHandler(t, &stubGateway{})

	status, body := perform(t, h, http.MethodPost, "/tasks", map[string]any{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Title is required", body["error"])

	status, body = perform(t, h, http.MethodPost, "/tasks",
		map[string]any{"title": "x", "status": "archived"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Status must be pending, in-progress, or completed", body["error"])
}

func TestCreateTaskMalformedBody(t *testing.T) {
	h := newHandler(t, &stubGateway{})

	var req fasthttp.Request
	req.Header.SetMethod(http.MethodPost)
	req.SetRequestURI("/tasks")
	req.Header.SetContentType("application/json")
	req.SetBody([]byte("{not json"))

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	h(&ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"invalid payload"}`, string(ctx.Response.Body()))
}

func TestListTasksWithStatusFilter(t *testing.T) {
	h := newHandler(t, &stubGateway{})
	createTask(t, h, map[string]any{"title": "a"})
	createTask(t, h, map[string]any{"title": "b", "status": "completed"})

	status, raw := performRaw(t, h, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, status)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all, 2)

	status, raw = performRaw(t, h, http.MethodGet, "/tasks?status=completed", nil)
	require.Equal(t, http.StatusOK, status)
	var completed []map[string]any
	require.NoError(t, json.Unmarshal(raw, &completed))
	require.Len(t, completed, 1)
	assert.Equal(t, "b", completed[0]["title"])
}

func TestUpdateTask(t *testing.T) {
	h := newHandler(t, &stubGateway{})
	created := createTask(t, h, map[string]any{"title": "draft"})
	id := created["id"].(string)

	status, updated := perform(t, h, http.MethodPatch, "/tasks/"+id,
		map[string]any{"title": "final", "status": "in-progress"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "final", updated["title"])
	assert.Equal(t, "in-progress", updated["status"])

	status, body := perform(t, h, http.MethodPatch, "/tasks/"+id, map[string]any{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Title cannot be empty", body["error"])

	status, body = perform(t, h, http.MethodPatch, "/tasks/missing", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Task not found", body["error"])
}

func TestDeleteTaskCascades(t *testing.T) {
	h := newHandler(t, &stubGateway{})
	created := createTask(t, h, map[string]any{"title": "doomed"})
	id := created["id"].(string)

	status, _ := perform(t, h, http.MethodPost, "/tasks/"+id+"/notes",
		map[string]any{"content": "progress"})
	require.Equal(t, http.StatusCreated, status)

	status, body := perform(t, h, http.MethodDelete, "/tasks/"+id, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Task deleted", body["message"])

	status, _ = perform(t, h, http.MethodGet, "/tasks/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = perform(t, h, http.MethodGet, "/tasks/"+id+"/notes", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNotesFlow(t *testing.T) {
	h := newHandler(t, &stubGateway{})
	created := createTask(t, h, map[string]any{"title": "with notes"})
	id := created["id"].(string)

	status, note := perform(t, h, http.MethodPost, "/tasks/"+id+"/notes",
		map[string]any{"content": "  first step done  "})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "first step done", note["content"])
	assert.Equal(t, id, note["taskId"])

	status, body := perform(t, h, http.MethodPost, "/tasks/"+id+"/notes",
		map[string]any{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Note content is required", body["error"])

	status, done := perform(t, h, http.MethodPost, "/tasks/"+id+"/notes",
		map[string]any{"content": "shipped", "markComplete": true})
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, done["id"])

	status, fetched := perform(t, h, http.MethodGet, "/tasks/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", fetched["status"])
	assert.Equal(t, float64(2), fetched["notesCount"])
	assert.Equal(t, "shipped", fetched["latestNote"])

	status, raw := performRaw(t, h, http.MethodGet, "/tasks/"+id+"/notes", nil)
	require.Equal(t, http.StatusOK, status)
	var notes []map[string]any
	require.NoError(t, json.Unmarshal(raw, &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "first step done", notes[0]["content"])
	assert.Equal(t, "shipped", notes[1]["content"])
}

func TestRecommendEndpoint(t *testing.T) {
	h := newHandler(t, &stubGateway{reply: "1. 📝 Break it down"})
	created := createTask(t, h, map[string]any{"title": "big feature"})

	status, body := perform(t, h, http.MethodPost,
		"/tasks/"+created["id"].(string)+"/ai-recommend", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1. 📝 Break it down", body["recommendation"])

	status, body = perform(t, h, http.MethodPost, "/tasks/ghost/ai-recommend", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Task not found", body["error"])
}

func TestChatEndpoint(t *testing.T) {
	h := newHandler(t, &stubGateway{reply: "You have 1 task pending."})
	createTask(t, h, map[string]any{"title": "answer emails"})

	status, body := perform(t, h, http.MethodPost, "/chat",
		map[string]any{"message": "what should I do?"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "You have 1 task pending.", body["reply"])

	status, body = perform(t, h, http.MethodPost, "/chat", map[string]any{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Message is required", body["error"])
}

func TestChatGatewayFailure(t *testing.T) {
	h := newHandler(t, &stubGateway{err: errors.New("upstream exploded")})

	status, body := perform(t, h, http.MethodPost, "/chat", map[string]any{"message": "hi"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "AI service error: upstream exploded", body["error"])
}

func TestProfileEndpoints(t *testing.T) {
	h := newHandler(t, &stubGateway{})
	createTask(t, h, map[string]any{"title": "a"})
	createTask(t, h, map[string]any{"title": "b", "status": "completed"})

	status, view := perform(t, h, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User", view["name"])
	stats, ok := view["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(1), stats["completed"])

	status, updated := perform(t, h, http.MethodPost, "/profile",
		map[string]any{"name": "Ada", "avatar": "🚀"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada", updated["name"])
	assert.Equal(t, "🚀", updated["avatar"])
	_, hasStats := updated["stats"]
	assert.False(t, hasStats)
}

func TestHealthEndpoint(t *testing.T) {
	h := newHandler(t, &stubGateway{})
	createTask(t, h, map[string]any{"title": "a"})

	status, body := perform(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)

	storage, ok := body["storage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), storage["tasks"])
	ai, ok := body["ai"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, ai["configured"])
}

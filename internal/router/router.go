package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/tasknest/backend/api/handler"
)

type Handlers struct {
	Task      *apiHandler.TaskHandler
	Note      *apiHandler.NoteHandler
	Assistant *apiHandler.AssistantHandler
	Profile   *apiHandler.ProfileHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/tasks", handlers.Task.GetTasks)
	r.POST("/tasks", handlers.Task.CreateTask)
	r.GET("/tasks/{id}", handlers.Task.GetTask)
	r.PATCH("/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/tasks/{id}", handlers.Task.DeleteTask)

	r.GET("/tasks/{id}/notes", handlers.Note.ListNotes)
	r.POST("/tasks/{id}/notes", handlers.Note.AddNote)

	r.POST("/tasks/{id}/ai-recommend", handlers.Assistant.Recommend)
	r.POST("/chat", handlers.Assistant.Chat)

	r.GET("/profile", handlers.Profile.GetProfile)
	r.POST("/profile", handlers.Profile.UpdateProfile)

	return r
}

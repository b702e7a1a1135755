package transport

import "github.com/tasknest/backend/domain"

type TaskCreateRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	StartTime       *string `json:"startTime"`
	FinishBy        *string `json:"finishBy"`
	DueDate         *string `json:"dueDate"`
	ReminderEnabled bool    `json:"reminderEnabled"`
}

// TaskUpdateRequest uses pointers throughout so a PATCH only touches the
// fields the client actually sent.
type TaskUpdateRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Status          *string `json:"status"`
	StartTime       *string `json:"startTime"`
	FinishBy        *string `json:"finishBy"`
	DueDate         *string `json:"dueDate"`
	ReminderEnabled *bool   `json:"reminderEnabled"`
}

type NoteCreateRequest struct {
	Content      string `json:"content"`
	MarkComplete bool   `json:"markComplete"`
}

// ChatRequest carries the user message and, optionally, a caller-managed
// history window. A nil History means "use the server-side chat log".
type ChatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history"`
}

type ProfileUpdateRequest struct {
	Name          *string `json:"name"`
	Avatar        *string `json:"avatar"`
	ReminderSound *string `json:"reminderSound"`
}

package domain

import "time"

// Note is an immutable progress entry attached to exactly one task. Notes
// have no update operation; they live until their parent task is deleted.
type Note struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

package repository

import (
	"context"

	"github.com/tasknest/backend/domain"
)

type NoteRepository interface {
	// ListByTask returns the task's notes in chronological (creation) order.
	ListByTask(ctx context.Context, taskID string) ([]domain.Note, error)
	CountByTask(ctx context.Context, taskID string) (int, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
}

package repository

import (
	"context"

	"github.com/tasknest/backend/domain"
)

type TaskFilter struct {
	Status domain.TaskStatus
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns every task in storage order; filtering and presentation
	// ordering belong to the caller.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// Delete removes the task and every note referencing it as one atomic
	// operation.
	Delete(ctx context.Context, id string) error
}

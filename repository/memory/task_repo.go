package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/backend/domain"
	"github.com/tasknest/backend/repository"
)

type taskRepository struct {
	store *Store
}

// NewTaskRepository returns the in-memory implementation of TaskRepository.
func NewTaskRepository(store *Store) repository.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(r.store.tasks))
	for _, task := range r.store.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		tasks = append(tasks, *cloneTask(task))
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.tasks[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	// ID and CreatedAt are immutable.
	task.CreatedAt = stored.CreatedAt
	r.store.tasks[task.ID] = cloneTask(task)
	return nil
}

// Delete removes the task and cascades to its notes under one lock
// acquisition, so no partial state is ever observable.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}

	delete(r.store.tasks, id)
	for _, noteID := range r.store.noteOrder[id] {
		delete(r.store.notes, noteID)
	}
	delete(r.store.noteOrder, id)
	return nil
}

package note

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tasknest/backend/domain"
	appLogger "github.com/tasknest/backend/pkg/logger"
	"github.com/tasknest/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	notes  repository.NoteRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, notes repository.NoteRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		notes:  notes,
		logger: logger,
	}
}

type AddNoteInput struct {
	Content      string
	MarkComplete bool
}

// AddNote attaches a progress note to an existing task. MarkComplete flips
// the parent task to completed as a side effect; the overdue flag is left
// alone (only an explicit update clears it).
func (uc *UseCase) AddNote(ctx context.Context, taskID string, in AddNoteInput) (*domain.Note, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Note content is required")
	}

	if in.MarkComplete {
		task.Status = domain.StatusCompleted
		if err := uc.tasks.Update(ctx, task); err != nil {
			return nil, err
		}
	}

	created, err := uc.notes.Create(ctx, &domain.Note{
		TaskID:  taskID,
		Content: content,
	})
	if err != nil {
		return nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("note added",
		zap.String("task_id", taskID), zap.String("note_id", created.ID))
	return created, nil
}

// ListNotes returns the task's notes in chronological order, failing when the
// task itself is absent.
func (uc *UseCase) ListNotes(ctx context.Context, taskID string) ([]domain.Note, error) {
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return uc.notes.ListByTask(ctx, taskID)
}

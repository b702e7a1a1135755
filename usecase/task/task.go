package task

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tasknest/backend/domain"
	appLogger "github.com/tasknest/backend/pkg/logger"
	"github.com/tasknest/backend/repository"
)

type UseCase struct {
	tasks    repository.TaskRepository
	notes    repository.NoteRepository
	validate *validator.Validate
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, notes repository.NoteRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		notes:    notes,
		validate: validator.New(),
		logger:   logger,
	}
}

type CreateTaskInput struct {
	Title           string  `validate:"required"`
	Description     string  `validate:"-"`
	Status          string  `validate:"omitempty,oneof=pending in-progress completed"`
	StartTime       *string `validate:"-"`
	FinishBy        *string `validate:"-"`
	DueDate         *string `validate:"-"`
	ReminderEnabled bool    `validate:"-"`
}

// UpdateTaskInput carries a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	Status          *string `validate:"omitempty,oneof=pending in-progress completed"`
	StartTime       *string
	FinishBy        *string
	DueDate         *string
	ReminderEnabled *bool
}

func (uc *UseCase) CreateTask(ctx context.Context, in CreateTaskInput) (*domain.EnrichedTask, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Status == "" {
		in.Status = string(domain.StatusPending)
	}

	if err := uc.validate.Struct(in); err != nil {
		return nil, invalidInputError(err)
	}

	task := &domain.Task{
		Title:           in.Title,
		Description:     in.Description,
		Status:          domain.TaskStatus(in.Status),
		StartTime:       in.StartTime,
		FinishBy:        in.FinishBy,
		DueDate:         in.DueDate,
		ReminderEnabled: in.ReminderEnabled,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("task created", zap.String("task_id", created.ID))

	enriched := uc.enrich(ctx, *created)
	return &enriched, nil
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.EnrichedTask, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.RefreshStatus(time.Now().UTC()) {
		if err := uc.tasks.Update(ctx, task); err != nil {
			return nil, err
		}
	}

	enriched := uc.enrich(ctx, *task)
	return &enriched, nil
}

// ListTasks refreshes every task's time-derived status, enriches the result
// and returns it newest-first. An unknown statusFilter value disables
// filtering rather than failing.
func (uc *UseCase) ListTasks(ctx context.Context, statusFilter string) ([]domain.EnrichedTask, error) {
	tasks, err := uc.refreshAll(ctx)
	if err != nil {
		return nil, err
	}

	filter := domain.TaskStatus(statusFilter)
	applyFilter := domain.ValidStatus(filter)

	enriched := make([]domain.EnrichedTask, 0, len(tasks))
	for _, task := range tasks {
		if applyFilter && task.Status != filter {
			continue
		}
		enriched = append(enriched, uc.enrich(ctx, task))
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].CreatedAt.After(enriched[j].CreatedAt)
	})
	return enriched, nil
}

func (uc *UseCase) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*domain.EnrichedTask, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, invalidInputError(err)
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Title cannot be empty")
	}

	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		task.Status = domain.TaskStatus(*in.Status)
	}
	if in.Title != nil {
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = strings.TrimSpace(*in.Description)
	}
	if in.StartTime != nil {
		task.StartTime = in.StartTime
	}
	if in.FinishBy != nil {
		task.FinishBy = in.FinishBy
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.ReminderEnabled != nil {
		task.ReminderEnabled = *in.ReminderEnabled
	}

	// Landing on completed clears the overdue flag, however it got there.
	if task.Status == domain.StatusCompleted {
		task.Overdue = false
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	enriched := uc.enrich(ctx, *task)
	return &enriched, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("task deleted", zap.String("task_id", id))
	return nil
}

// Stats counts tasks per refreshed status for the profile view.
func (uc *UseCase) Stats(ctx context.Context) (domain.TaskStats, error) {
	tasks, err := uc.refreshAll(ctx)
	if err != nil {
		return domain.TaskStats{}, err
	}

	stats := domain.TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

func (uc *UseCase) refreshAll(ctx context.Context) ([]domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range tasks {
		if tasks[i].RefreshStatus(now) {
			if err := uc.tasks.Update(ctx, &tasks[i]); err != nil {
				return nil, err
			}
		}
	}
	return tasks, nil
}

func (uc *UseCase) enrich(ctx context.Context, task domain.Task) domain.EnrichedTask {
	enriched := domain.EnrichedTask{Task: task}

	notes, err := uc.notes.ListByTask(ctx, task.ID)
	if err != nil {
		uc.logger.Warn("note lookup failed during enrichment",
			zap.String("task_id", task.ID), zap.Error(err))
		return enriched
	}

	enriched.NotesCount = len(notes)
	if len(notes) > 0 {
		latest := notes[len(notes)-1].Content
		enriched.LatestNote = &latest
	}
	return enriched
}

// invalidInputError converts validator failures into the API's error wording.
func invalidInputError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid input", err)
	}
	switch verrs[0].Field() {
	case "Title":
		return domain.NewError(domain.ErrCodeInvalid, "Title is required")
	case "Status":
		return domain.NewError(domain.ErrCodeInvalid, "Status must be pending, in-progress, or completed")
	default:
		return domain.WrapError(domain.ErrCodeInvalid, "invalid input", err)
	}
}

package note_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/backend/domain"
	"github.com/tasknest/backend/repository/memory"
	noteUC "github.com/tasknest/backend/usecase/note"
)

func newFixture(t *testing.T) (*noteUC.UseCase, *domain.Task) {
	t.Helper()
	store := memory.NewStore()
	tasks := memory.NewTaskRepository(store)
	notes := memory.NewNoteRepository(store)

	task, err := tasks.Create(context.Background(), &domain.Task{
		Title:  "Ship it",
		Status: domain.StatusInProgress,
	})
	require.NoError(t, err)

	return noteUC.New(tasks, notes, nil), task
}

func TestAddNote(t *testing.T) {
	uc, task := newFixture(t)
	ctx := context.Background()

	created, err := uc.AddNote(ctx, task.ID, noteUC.AddNoteInput{Content: "  progress made  "})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, task.ID, created.TaskID)
	assert.Equal(t, "progress made", created.Content)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestAddNoteUnknownTask(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.AddNote(context.Background(), "missing", noteUC.AddNoteInput{Content: "hi"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestAddNoteEmptyContent(t *testing.T) {
	uc, task := newFixture(t)

	_, err := uc.AddNote(context.Background(), task.ID, noteUC.AddNoteInput{Content: "   "})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.EqualError(t, err, "Note content is required")
}

func TestAddNoteMarkComplete(t *testing.T) {
	store := memory.NewStore()
	tasks := memory.NewTaskRepository(store)
	notes := memory.NewNoteRepository(store)
	uc := noteUC.New(tasks, notes, nil)
	ctx := context.Background()

	task, err := tasks.Create(ctx, &domain.Task{Title: "t", Status: domain.StatusInProgress})
	require.NoError(t, err)

	_, err = uc.AddNote(ctx, task.ID, noteUC.AddNoteInput{Content: "done", MarkComplete: true})
	require.NoError(t, err)

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestAddNoteMarkCompleteKeepsOverdue(t *testing.T) {
	store := memory.NewStore()
	tasks := memory.NewTaskRepository(store)
	notes := memory.NewNoteRepository(store)
	uc := noteUC.New(tasks, notes, nil)
	ctx := context.Background()

	finishBy := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	task, err := tasks.Create(ctx, &domain.Task{
		Title:    "late",
		Status:   domain.StatusPending,
		FinishBy: &finishBy,
	})
	require.NoError(t, err)

	refreshed := *task
	require.True(t, refreshed.RefreshStatus(time.Now().UTC()))
	require.True(t, refreshed.Overdue)
	require.NoError(t, tasks.Update(ctx, &refreshed))

	_, err = uc.AddNote(ctx, task.ID, noteUC.AddNoteInput{Content: "wrapped up", MarkComplete: true})
	require.NoError(t, err)

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.True(t, got.Overdue)
}

func TestListNotesUnknownTask(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.ListNotes(context.Background(), "missing")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestListNotesOrder(t *testing.T) {
	uc, task := newFixture(t)
	ctx := context.Background()

	for _, content := range []string{"one", "two"} {
		_, err := uc.AddNote(ctx, task.ID, noteUC.AddNoteInput{Content: content})
		require.NoError(t, err)
	}

	listed, err := uc.ListNotes(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "one", listed[0].Content)
	assert.Equal(t, "two", listed[1].Content)
}

package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/backend/domain"
	"github.com/tasknest/backend/repository"
)

type noteRepository struct {
	store *Store
}

// NewNoteRepository returns the in-memory implementation of NoteRepository.
func NewNoteRepository(store *Store) repository.NoteRepository {
	return &noteRepository{store: store}
}

func (r *noteRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Note, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := r.store.noteOrder[taskID]
	notes := make([]domain.Note, 0, len(ids))
	for _, id := range ids {
		if note, ok := r.store.notes[id]; ok {
			notes = append(notes, *note)
		}
	}
	return notes, nil
}

func (r *noteRepository) CountByTask(ctx context.Context, taskID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.noteOrder[taskID]), nil
}

// Create stores a note for an existing task. The parent check and the insert
// share one lock acquisition so a concurrent cascade delete cannot leave an
// orphan behind.
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if note == nil {
		return nil, domain.ErrInvalidPayload
	}
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tasks[note.TaskID]; !ok {
		return nil, domain.ErrTaskNotFound
	}

	cp := *note
	r.store.notes[note.ID] = &cp
	r.store.noteOrder[note.TaskID] = append(r.store.noteOrder[note.TaskID], note.ID)
	return note, nil
}

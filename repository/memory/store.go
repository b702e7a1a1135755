package memory

import (
	"sync"

	"github.com/tasknest/backend/domain"
)

// Store is the process-wide in-memory database shared by every repository
// driver in this package. All state is lost on restart.
//
// A single RWMutex guards the whole store so that the task/note cascade
// delete is atomic: no reader can observe a deleted task with surviving
// notes, or the reverse.
type Store struct {
	mu sync.RWMutex

	tasks map[string]*domain.Task
	notes map[string]*domain.Note
	// noteOrder keeps each task's note IDs in insertion order, which is
	// creation order; chronological listing reads it directly.
	noteOrder map[string][]string

	profile domain.Profile
	chatLog []domain.ChatMessage
}

// NewStore creates an empty store seeded with the default profile.
func NewStore() *Store {
	return &Store{
		tasks:     make(map[string]*domain.Task),
		notes:     make(map[string]*domain.Note),
		noteOrder: make(map[string][]string),
		profile:   domain.NewProfile(),
	}
}

// Counts reports the number of stored tasks and notes, for health reporting.
func (s *Store) Counts() (tasks, notes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), len(s.notes)
}

func cloneTask(t *domain.Task) *domain.Task {
	cp := *t
	cp.StartTime = cloneStr(t.StartTime)
	cp.FinishBy = cloneStr(t.FinishBy)
	cp.DueDate = cloneStr(t.DueDate)
	return &cp
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

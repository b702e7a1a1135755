package memory

import (
	"context"

	"github.com/tasknest/backend/domain"
	"github.com/tasknest/backend/repository"
)

type chatLogRepository struct {
	store *Store
}

// NewChatLogRepository returns the in-memory implementation of ChatLogRepository.
func NewChatLogRepository(store *Store) repository.ChatLogRepository {
	return &chatLogRepository{store: store}
}

func (r *chatLogRepository) Append(ctx context.Context, messages ...domain.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.chatLog = append(r.store.chatLog, messages...)
	return nil
}

func (r *chatLogRepository) Recent(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	log := r.store.chatLog
	if limit > 0 && len(log) > limit {
		log = log[len(log)-limit:]
	}
	out := make([]domain.ChatMessage, len(log))
	copy(out, log)
	return out, nil
}

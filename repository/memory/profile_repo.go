package memory

import (
	"context"

	"github.com/tasknest/backend/domain"
	"github.com/tasknest/backend/repository"
)

type profileRepository struct {
	store *Store
}

// NewProfileRepository returns the in-memory implementation of ProfileRepository.
func NewProfileRepository(store *Store) repository.ProfileRepository {
	return &profileRepository{store: store}
}

func (r *profileRepository) Get(ctx context.Context) (domain.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.profile = profile
	return profile, nil
}

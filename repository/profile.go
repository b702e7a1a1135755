package repository

import (
	"context"

	"github.com/tasknest/backend/domain"
)

type ProfileRepository interface {
	Get(ctx context.Context) (domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

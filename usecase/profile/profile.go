package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tasknest/backend/domain"
	appLogger "github.com/tasknest/backend/pkg/logger"
	"github.com/tasknest/backend/repository"
)

// StatsProvider supplies task counts per status; the task use case
// implements it over the refreshed statuses.
type StatsProvider interface {
	Stats(ctx context.Context) (domain.TaskStats, error)
}

type UseCase struct {
	profiles repository.ProfileRepository
	stats    StatsProvider
	logger   *zap.Logger
}

func New(profiles repository.ProfileRepository, stats StatsProvider, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		profiles: profiles,
		stats:    stats,
		logger:   logger,
	}
}

// View is the profile read model: the record plus current task statistics.
type View struct {
	domain.Profile
	Stats domain.TaskStats `json:"stats"`
}

func (uc *UseCase) GetProfile(ctx context.Context) (*View, error) {
	prof, err := uc.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := uc.stats.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &View{Profile: prof, Stats: stats}, nil
}

// UpdateInput carries a partial profile update: nil fields are untouched,
// supplied-but-blank fields fall back to the defaults.
type UpdateInput struct {
	Name          *string
	Avatar        *string
	ReminderSound *string
}

func (uc *UseCase) UpdateProfile(ctx context.Context, in UpdateInput) (domain.Profile, error) {
	prof, err := uc.profiles.Get(ctx)
	if err != nil {
		return domain.Profile{}, err
	}

	if in.Name != nil {
		prof.Name = strings.TrimSpace(*in.Name)
		if prof.Name == "" {
			prof.Name = domain.DefaultProfileName
		}
	}
	if in.Avatar != nil {
		prof.Avatar = *in.Avatar
		if prof.Avatar == "" {
			prof.Avatar = domain.DefaultProfileAvatar
		}
	}
	if in.ReminderSound != nil {
		prof.ReminderSound = *in.ReminderSound
		if prof.ReminderSound == "" {
			prof.ReminderSound = domain.DefaultReminderSound
		}
	}

	updated, err := uc.profiles.Update(ctx, prof)
	if err != nil {
		return domain.Profile{}, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("profile updated", zap.String("name", updated.Name))
	return updated, nil
}

package repository

import (
	"context"

	"github.com/tasknest/backend/domain"
)

type ChatLogRepository interface {
	Append(ctx context.Context, messages ...domain.ChatMessage) error
	// Recent returns the last limit entries in order; limit <= 0 returns all.
	Recent(ctx context.Context, limit int) ([]domain.ChatMessage, error)
}

package session

import (
	"context"
	"time"
)

type Repository interface {
	// Get returns the session for a user, or domain.NewNotFoundError
	// when no row exists.
	Get(ctx context.Context, userID string) (*Session, error)
	// Upsert creates the row or refreshes thread_id and last_interaction.
	// created_date is written once and never overwritten.
	Upsert(ctx context.Context, userID, threadID string, now time.Time) error
	Delete(ctx context.Context, userID string) error
}

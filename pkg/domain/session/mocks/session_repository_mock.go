package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/askit4care/careline/pkg/domain/session"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Get(ctx context.Context, userID string) (*session.Session, error) {
	args := m.Called(ctx, userID)
	sess, ok := args.Get(0).(*session.Session)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *session.Session, got %T", args.Get(0))
	}
	return sess, args.Error(1)
}

func (m *Repository) Upsert(ctx context.Context, userID, threadID string, now time.Time) error {
	args := m.Called(ctx, userID, threadID, now)
	return args.Error(0)
}

func (m *Repository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

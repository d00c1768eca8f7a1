package session

import (
	"context"
	"time"

	"github.com/askit4care/careline/pkg/domain"
	domainSession "github.com/askit4care/careline/pkg/domain/session"
	"github.com/askit4care/careline/pkg/infra/cache"
	"github.com/sirupsen/logrus"
)

// Store is the session access path used by the conversation flow: a
// redis read-through in front of the database repository.
type Store interface {
	// Find returns the current session or domain.NewNotFoundError.
	Find(ctx context.Context, userID string) (*domainSession.Session, error)
	// Touch upserts the row and refreshes the cached copy.
	Touch(ctx context.Context, userID, threadID string, now time.Time) error
	// Forget removes the row and its cached copy.
	Forget(ctx context.Context, userID string) error
}

type store struct {
	repo   domainSession.Repository
	cache  *cache.Cache
	logger *logrus.Logger
}

func NewStore(
	repo domainSession.Repository,
	c *cache.Cache,
	logger *logrus.Logger,
) Store {
	return &store{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

func (s *store) Find(ctx context.Context, userID string) (*domainSession.Session, error) {
	if cached, err := s.cache.GetSession(ctx, userID); err == nil {
		return cached, nil
	}

	entity, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !domain.IsNotFoundError(err) {
			s.logger.WithError(err).Error("failed to fetch session from repository")
		}
		return nil, err
	}

	if err := s.cache.SaveSession(ctx, entity); err != nil {
		s.logger.WithError(err).Warn("failed to cache session")
	}
	return entity, nil
}

func (s *store) Touch(ctx context.Context, userID, threadID string, now time.Time) error {
	if err := s.repo.Upsert(ctx, userID, threadID, now); err != nil {
		return err
	}

	entity, err := s.repo.Get(ctx, userID)
	if err != nil {
		// The row was just written; a read failure here only costs the
		// cached copy.
		s.logger.WithError(err).Warn("failed to re-read session after upsert")
		return nil
	}
	if err := s.cache.SaveSession(ctx, entity); err != nil {
		s.logger.WithError(err).Warn("failed to cache session")
	}
	return nil
}

func (s *store) Forget(ctx context.Context, userID string) error {
	if err := s.cache.DeleteSession(ctx, userID); err != nil {
		s.logger.WithError(err).Warn("failed to evict cached session")
	}

	err := s.repo.Delete(ctx, userID)
	if err != nil && domain.IsNotFoundError(err) {
		return nil
	}
	return err
}

package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	appSession "github.com/askit4care/careline/pkg/app/session"
	"github.com/askit4care/careline/pkg/domain"
	"github.com/askit4care/careline/pkg/infra/assistant"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrThreadCreationFailed = errors.New("failed to create assistant thread")
	ErrRunCreationFailed    = errors.New("failed to start assistant run")
	ErrRunFailed            = errors.New("assistant run failed")
	ErrEmptyAssistantReply  = errors.New("no response from assistant")
	ErrMessageSendFailed    = errors.New("failed to post user message")
)

//go:generate mockery --name=Processor --dir=. --output=./mocks --filename=processor_mock.go --case=underscore
type Processor interface {
	Process(ctx context.Context, userID, body string) (Result, error)
}

type Config struct {
	// StrictSend aborts the exchange when posting the user's message
	// fails. Off by default: the historical behavior starts the run
	// regardless, which means the assistant may answer without seeing
	// the new message.
	StrictSend bool
}

type processor struct {
	store  appSession.Store
	policy *appSession.Policy
	client assistant.Client
	config Config
	logger *logrus.Logger
}

func NewProcessor(
	store appSession.Store,
	policy *appSession.Policy,
	client assistant.Client,
	config Config,
	logger *logrus.Logger,
) Processor {
	return &processor{
		store:  store,
		policy: policy,
		client: client,
		config: config,
		logger: logger,
	}
}

func (p *processor) Process(ctx context.Context, userID, body string) (Result, error) {
	now := time.Now().UTC()
	log := p.logger.WithFields(logrus.Fields{
		"user_id":     userID,
		"exchange_id": uuid.NewString(),
	})

	sess, err := p.store.Find(ctx, userID)
	if err != nil {
		// An unreadable store behaves like an empty one: the user gets
		// a fresh session rather than an error.
		if !domain.IsNotFoundError(err) {
			log.WithError(err).Warn("session lookup failed, starting fresh")
		}
		sess = nil
	}

	status := p.policy.Evaluate(now, sess)
	log.WithField("status", status.String()).Info("session policy evaluated")

	var threadID string
	switch status {
	case appSession.StatusContinue:
		threadID = sess.ThreadID
	case appSession.StatusAskUser:
		// Short-circuit: no assistant call, no store write. The caller
		// re-prompts the user.
		return AskUserResult(), nil
	case appSession.StatusExpired:
		if err := p.store.Forget(ctx, userID); err != nil {
			log.WithError(err).Warn("failed to delete expired session")
		}
		log.Info("expired session deleted")
		fallthrough
	case appSession.StatusNew:
		threadID, err = p.client.CreateThread(ctx)
		if err != nil || threadID == "" {
			log.WithError(err).Error("failed to create a new thread")
			return Result{}, ErrThreadCreationFailed
		}
	}

	// The store write is not load-bearing for the exchange: a failed
	// upsert costs the session record, not the reply.
	if err := p.store.Touch(ctx, userID, threadID, now); err != nil {
		log.WithError(err).Error("failed to persist session")
	}

	if err := p.client.CreateMessage(ctx, threadID, body); err != nil {
		if p.config.StrictSend {
			log.WithError(err).Error("failed to post user message")
			return Result{}, ErrMessageSendFailed
		}
		log.WithError(err).Warn("failed to post user message, starting run anyway")
	}

	runID, err := p.client.CreateRun(ctx, threadID)
	if err != nil || runID == "" {
		log.WithError(err).Error("failed to start assistant run")
		return Result{}, ErrRunCreationFailed
	}

	runStatus, err := p.client.PollRun(ctx, threadID, runID)
	if err != nil {
		log.WithError(err).Error("run polling ended with error")
	}

	switch runStatus {
	case assistant.RunRequiresAction:
		log.Info("assistant requires action from user")
		return RequiresActionResult(), nil
	case assistant.RunFailed:
		log.Error("assistant run failed")
		return Result{}, ErrRunFailed
	}

	reply, err := p.client.LatestAssistantMessage(ctx, threadID)
	if err != nil {
		log.WithError(err).Error("failed to retrieve assistant response")
		return Result{}, fmt.Errorf("failed to retrieve assistant response: %w", err)
	}
	if reply == "" {
		log.Warn("no response from assistant")
		return Result{}, ErrEmptyAssistantReply
	}

	if err := p.store.Touch(ctx, userID, threadID, time.Now().UTC()); err != nil {
		log.WithError(err).Warn("failed to refresh last interaction")
	}

	return ReplyResult(reply), nil
}

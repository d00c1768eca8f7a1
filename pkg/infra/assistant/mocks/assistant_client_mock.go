package mocks

import (
	"context"

	"github.com/askit4care/careline/pkg/infra/assistant"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (m *Client) CreateThread(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Client) CreateMessage(ctx context.Context, threadID, text string) error {
	args := m.Called(ctx, threadID, text)
	return args.Error(0)
}

func (m *Client) CreateRun(ctx context.Context, threadID string) (string, error) {
	args := m.Called(ctx, threadID)
	return args.String(0), args.Error(1)
}

func (m *Client) PollRun(ctx context.Context, threadID, runID string) (assistant.RunStatus, error) {
	args := m.Called(ctx, threadID, runID)
	status, _ := args.Get(0).(assistant.RunStatus)
	return status, args.Error(1)
}

func (m *Client) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	args := m.Called(ctx, threadID)
	return args.String(0), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/askit4care/careline/pkg/app/conversation"
	"github.com/stretchr/testify/mock"
)

type Processor struct {
	mock.Mock
}

func (m *Processor) Process(ctx context.Context, userID, body string) (conversation.Result, error) {
	args := m.Called(ctx, userID, body)
	result, _ := args.Get(0).(conversation.Result)
	return result, args.Error(1)
}

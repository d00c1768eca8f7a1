package session_test

import (
	"testing"
	"time"

	appSession "github.com/askit4care/careline/pkg/app/session"
	domainSession "github.com/askit4care/careline/pkg/domain/session"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_Evaluate(t *testing.T) {
	now := time.Date(2024, 11, 2, 12, 0, 0, 0, time.UTC)
	policy := appSession.NewPolicy(3, 180)

	tests := []struct {
		name string
		gap  time.Duration
		want appSession.Status
	}{
		{"same day", 2 * time.Hour, appSession.StatusContinue},
		{"two days ago", 48 * time.Hour, appSession.StatusContinue},
		{"just under three days", 72*time.Hour - time.Minute, appSession.StatusContinue},
		{"exactly three days", 72 * time.Hour, appSession.StatusAskUser},
		{"ten days ago", 10 * 24 * time.Hour, appSession.StatusAskUser},
		{"just under 180 days", 180*24*time.Hour - time.Minute, appSession.StatusAskUser},
		{"exactly 180 days", 180 * 24 * time.Hour, appSession.StatusExpired},
		{"200 days ago", 200 * 24 * time.Hour, appSession.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := domainSession.NewSession("5551234", "thread_abc", now.Add(-tt.gap))
			assert.Equal(t, tt.want, policy.Evaluate(now, sess))
		})
	}
}

func TestPolicy_Evaluate_NoSession(t *testing.T) {
	policy := appSession.NewPolicy(3, 180)
	assert.Equal(t, appSession.StatusNew, policy.Evaluate(time.Now().UTC(), nil))
}

func TestPolicy_Defaults(t *testing.T) {
	now := time.Date(2024, 11, 2, 12, 0, 0, 0, time.UTC)
	policy := appSession.NewPolicy(0, 0)

	recent := domainSession.NewSession("u", "t", now.Add(-24*time.Hour))
	stale := domainSession.NewSession("u", "t", now.Add(-179*24*time.Hour))
	gone := domainSession.NewSession("u", "t", now.Add(-181*24*time.Hour))

	assert.Equal(t, appSession.StatusContinue, policy.Evaluate(now, recent))
	assert.Equal(t, appSession.StatusAskUser, policy.Evaluate(now, stale))
	assert.Equal(t, appSession.StatusExpired, policy.Evaluate(now, gone))
}

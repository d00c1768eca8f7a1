package session

import (
	"time"

	domain "github.com/askit4care/careline/pkg/domain/session"
)

const (
	// DefaultContinueDays is the window in which a conversation resumes
	// silently on its existing thread.
	DefaultContinueDays = 3
	// DefaultExpireDays discards the session outright. Six 30-day
	// months, deliberately not calendar months.
	DefaultExpireDays = 6 * 30
)

type Status int

const (
	// StatusNew means no usable session exists; a thread must be created.
	StatusNew Status = iota
	// StatusContinue resumes the stored thread.
	StatusContinue
	// StatusAskUser means the user must confirm whether to resume or
	// start over before anything else happens.
	StatusAskUser
	// StatusExpired means the stored session is discarded and a fresh
	// one created.
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusContinue:
		return "continue"
	case StatusAskUser:
		return "ask_user"
	case StatusExpired:
		return "expired"
	}
	return "unknown"
}

// Policy decides how to treat an inbound message based on how long ago
// the user last interacted.
type Policy struct {
	continueDays int
	expireDays   int
}

func NewPolicy(continueDays, expireDays int) *Policy {
	if continueDays <= 0 {
		continueDays = DefaultContinueDays
	}
	if expireDays <= 0 {
		expireDays = DefaultExpireDays
	}
	return &Policy{
		continueDays: continueDays,
		expireDays:   expireDays,
	}
}

// Evaluate compares whole elapsed days, truncated, against the two
// thresholds. Partial days do not count.
func (p *Policy) Evaluate(now time.Time, sess *domain.Session) Status {
	if sess == nil {
		return StatusNew
	}

	days := int(now.Sub(sess.LastInteraction).Hours() / 24)
	switch {
	case days < p.continueDays:
		return StatusContinue
	case days < p.expireDays:
		return StatusAskUser
	default:
		return StatusExpired
	}
}

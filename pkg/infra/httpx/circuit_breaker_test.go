package httpx

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	breaker := NewCircuitBreaker("test-breaker", 30*time.Second, 3)

	err := breaker.Execute(func() error {
		return nil
	})

	assert.NoError(t, err)
}

func TestCircuitBreaker_Execute_Error(t *testing.T) {
	breaker := NewCircuitBreaker("test-breaker", 30*time.Second, 3)
	boom := errors.New("upstream unavailable")

	err := breaker.Execute(func() error {
		return boom
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "test-breaker")
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	breaker := NewCircuitBreaker("test-breaker", time.Minute, 2)
	boom := errors.New("upstream unavailable")

	for i := 0; i < 2; i++ {
		_ = breaker.Execute(func() error { return boom })
	}

	calls := 0
	err := breaker.Execute(func() error {
		calls++
		return nil
	})

	assert.Error(t, err)
	assert.Zero(t, calls)
}

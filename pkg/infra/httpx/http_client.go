package httpx

import (
	"net/http"
	"time"
)

const DefaultTimeout = 120 * time.Second

// Client abstracts the outbound HTTP transport so callers can be tested
// against a mock.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
	}
}

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/askit4care/careline/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const (
	betaHeader      = "OpenAI-Beta"
	betaHeaderValue = "assistants=v2"

	DefaultBaseURL      = "https://api.openai.com/v1"
	DefaultPollInterval = 5 * time.Second
)

type RunStatus string

const (
	RunCompleted      RunStatus = "completed"
	RunFailed         RunStatus = "failed"
	RunRequiresAction RunStatus = "requires_action"
)

func (s RunStatus) Terminal() bool {
	switch s {
	case RunCompleted, RunFailed, RunRequiresAction:
		return true
	}
	return false
}

// Client drives one assistant exchange: thread creation, message posting,
// run lifecycle and response retrieval.
type Client interface {
	CreateThread(ctx context.Context) (string, error)
	CreateMessage(ctx context.Context, threadID, text string) error
	CreateRun(ctx context.Context, threadID string) (string, error)
	// PollRun blocks until the run reaches a terminal state, the attempt
	// budget runs out or ctx is cancelled. Transport failures map to
	// RunFailed.
	PollRun(ctx context.Context, threadID, runID string) (RunStatus, error)
	LatestAssistantMessage(ctx context.Context, threadID string) (string, error)
}

type Config struct {
	APIKey      string
	AssistantID string
	BaseURL     string
	// PollInterval is the fixed delay between run status fetches.
	PollInterval time.Duration
	// MaxPollAttempts bounds the poll loop; 0 polls until a terminal
	// state, which matches the historical behavior.
	MaxPollAttempts int
}

type client struct {
	config     Config
	httpClient httpx.Client
	breaker    httpx.CircuitBreaker
	logger     *logrus.Logger
}

func NewClient(
	config Config,
	httpClient httpx.Client,
	breaker httpx.CircuitBreaker,
	logger *logrus.Logger,
) Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	return &client{
		config:     config,
		httpClient: httpClient,
		breaker:    breaker,
		logger:     logger,
	}
}

func (c *client) CreateThread(ctx context.Context) (string, error) {
	body, err := c.call(ctx, http.MethodPost, "/threads", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}

	threadID := fastjson.GetString(body, "id")
	if threadID == "" {
		return "", fmt.Errorf("thread response missing id")
	}

	c.logger.WithField("thread_id", threadID).Info("thread created")
	return threadID, nil
}

func (c *client) CreateMessage(ctx context.Context, threadID, text string) error {
	payload, err := json.Marshal(map[string]string{
		"role":    "user",
		"content": text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	body, err := c.call(ctx, http.MethodPost, "/threads/"+threadID+"/messages", payload)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"thread_id":  threadID,
		"message_id": fastjson.GetString(body, "id"),
	}).Debug("message created")
	return nil
}

func (c *client) CreateRun(ctx context.Context, threadID string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"assistant_id": c.config.AssistantID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal run payload: %w", err)
	}

	body, err := c.call(ctx, http.MethodPost, "/threads/"+threadID+"/runs", payload)
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}

	runID := fastjson.GetString(body, "id")
	if runID == "" {
		return "", fmt.Errorf("run response missing id")
	}

	c.logger.WithFields(logrus.Fields{
		"thread_id": threadID,
		"run_id":    runID,
	}).Info("run started")
	return runID, nil
}

func (c *client) PollRun(ctx context.Context, threadID, runID string) (RunStatus, error) {
	attempts := 0
	for {
		status, err := c.fetchRunStatus(ctx, threadID, runID)
		if err != nil {
			return RunFailed, fmt.Errorf("failed to fetch run status: %w", err)
		}

		c.logger.WithFields(logrus.Fields{
			"run_id": runID,
			"status": string(status),
		}).Debug("run status")

		if status.Terminal() {
			return status, nil
		}

		attempts++
		if c.config.MaxPollAttempts > 0 && attempts >= c.config.MaxPollAttempts {
			return RunFailed, fmt.Errorf("run %s not terminal after %d polls", runID, attempts)
		}

		select {
		case <-ctx.Done():
			return RunFailed, ctx.Err()
		case <-time.After(c.config.PollInterval):
		}
	}
}

func (c *client) fetchRunStatus(ctx context.Context, threadID, runID string) (RunStatus, error) {
	body, err := c.call(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil)
	if err != nil {
		return RunFailed, err
	}

	status := fastjson.GetString(body, "status")
	if status == "" {
		return RunFailed, fmt.Errorf("run response missing status")
	}
	return RunStatus(status), nil
}

func (c *client) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	body, err := c.call(ctx, http.MethodGet, "/threads/"+threadID+"/messages", nil)
	if err != nil {
		return "", fmt.Errorf("failed to list messages: %w", err)
	}

	var p fastjson.Parser
	parsed, err := p.ParseBytes(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse messages response: %w", err)
	}

	// The API returns messages newest first.
	for _, message := range parsed.GetArray("data") {
		if string(message.GetStringBytes("role")) != "assistant" {
			continue
		}
		content := message.GetArray("content")
		if len(content) == 0 {
			continue
		}
		text := string(content[0].GetStringBytes("text", "value"))
		if text != "" {
			return text, nil
		}
	}
	return "", nil
}

func (c *client) call(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(betaHeader, betaHeaderValue)

	var body []byte
	err = c.breaker.Execute(func() error {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

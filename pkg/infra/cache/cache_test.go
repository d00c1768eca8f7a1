package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/askit4care/careline/pkg/domain/session"
	"github.com/askit4care/careline/pkg/infra/cache"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSession(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewCacheWithClient(client, time.Minute)

	now := time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC)
	entity := session.NewSession("5551234", "thread_abc", now)
	payload, err := json.Marshal(entity)
	require.NoError(t, err)

	mock.ExpectGet("session:5551234").SetVal(string(payload))

	got, err := c.GetSession(context.Background(), "5551234")
	require.NoError(t, err)
	assert.Equal(t, "thread_abc", got.ThreadID)
	assert.True(t, got.LastInteraction.Equal(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetSession_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewCacheWithClient(client, time.Minute)

	mock.ExpectGet("session:5551234").RedisNil()

	got, err := c.GetSession(context.Background(), "5551234")
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestCache_SaveSession(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewCacheWithClient(client, time.Minute)

	now := time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC)
	entity := session.NewSession("5551234", "thread_abc", now)
	payload, err := json.Marshal(entity)
	require.NoError(t, err)

	mock.ExpectSet("session:5551234", string(payload), time.Minute).SetVal("OK")

	require.NoError(t, c.SaveSession(context.Background(), entity))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_DeleteSession(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewCacheWithClient(client, time.Minute)

	mock.ExpectDel("session:5551234").SetVal(1)

	require.NoError(t, c.DeleteSession(context.Background(), "5551234"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

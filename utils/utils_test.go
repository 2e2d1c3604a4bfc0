package utils

import (
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	id, err := RequestID()
	require.NoError(t, err)
	assert.Len(t, id, 16) // 8 random bytes, hex encoded

	other, err := RequestID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestRedisHealthCheck_Success(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectPing().SetVal("PONG")

	assert.NoError(t, RedisHealthCheck(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisHealthCheck_Failure(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectPing().SetErr(errors.New("connection refused"))

	err := RedisHealthCheck(db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis health check failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedisClient_InvalidURLFallsBackToAddr(t *testing.T) {
	client := NewRedisClient("localhost:6379")
	defer client.Close()

	assert.Equal(t, "localhost:6379", client.Options().Addr)
	assert.Equal(t, 50, client.Options().PoolSize)
}

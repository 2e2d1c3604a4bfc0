package security

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tests"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httptest requests carry this remote address
const testClientKey = "ratelimit:login:192.0.2.1"

func newLoginEvent(t *testing.T, userAgent string) *core.RequestEvent {
	t.Helper()

	app, err := tests.NewTestApp(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(app.Cleanup)

	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	req.Header.Set("User-Agent", userAgent)

	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = httptest.NewRecorder()

	return e
}

func apiErrorStatus(t *testing.T, err error) int {
	t.Helper()

	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Status
}

func TestRateLimiter_AllowsFirstAttempt(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 3, time.Minute)

	mock.ExpectIncr(testClientKey).SetVal(1)
	mock.ExpectExpire(testClientKey, time.Minute).SetVal(true)

	called := false
	handler := limiter.LimitLogin(func(e *core.RequestEvent) error {
		called = true
		return nil
	})

	err := handler(newLoginEvent(t, "Mozilla/5.0"))

	assert.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_NoExpireAfterFirstAttempt(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 3, time.Minute)

	// the window was already started by the first attempt
	mock.ExpectIncr(testClientKey).SetVal(2)

	handler := limiter.LimitLogin(func(e *core.RequestEvent) error {
		return nil
	})

	err := handler(newLoginEvent(t, "Mozilla/5.0"))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 3, time.Minute)

	mock.ExpectIncr(testClientKey).SetVal(4)

	called := false
	handler := limiter.LimitLogin(func(e *core.RequestEvent) error {
		called = true
		return nil
	})

	err := handler(newLoginEvent(t, "Mozilla/5.0"))

	assert.False(t, called)
	assert.Equal(t, http.StatusTooManyRequests, apiErrorStatus(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 3, time.Minute)

	mock.ExpectIncr(testClientKey).SetErr(errors.New("connection refused"))

	called := false
	handler := limiter.LimitLogin(func(e *core.RequestEvent) error {
		called = true
		return nil
	})

	err := handler(newLoginEvent(t, "Mozilla/5.0"))

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestRateLimiter_RejectsSuspiciousUserAgent(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 3, time.Minute)

	handler := limiter.LimitLogin(func(e *core.RequestEvent) error {
		t.Fatal("handler must not run for a blocked user agent")
		return nil
	})

	err := handler(newLoginEvent(t, "Googlebot/2.1"))

	assert.Equal(t, http.StatusForbidden, apiErrorStatus(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsSuspiciousUserAgent(t *testing.T) {
	assert.True(t, isSuspiciousUserAgent("my-crawler/1.0"))
	assert.True(t, isSuspiciousUserAgent("SpiderBot"))
	assert.False(t, isSuspiciousUserAgent("Mozilla/5.0"))
	assert.False(t, isSuspiciousUserAgent(""))
}

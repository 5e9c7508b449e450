package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

// failTimes returns fn failing with err n times before succeeding.
func failTimes(n int, err error) (func() error, *int) {
	calls := 0
	return func() error {
		calls++
		if calls <= n {
			return err
		}
		return nil
	}, &calls
}

func TestWithBackoff(t *testing.T) {
	transient := &HTTPError{StatusCode: http.StatusBadGateway, Message: "502 Bad Gateway"}
	permanent := &HTTPError{StatusCode: http.StatusNotFound, Message: "404 Not Found"}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{name: "first call succeeds", failures: 0, err: transient, wantCalls: 1},
		{name: "succeeds after retries", failures: 2, err: transient, wantCalls: 3},
		{name: "gives up after max attempts", failures: 5, err: transient, wantCalls: 3, wantErr: transient},
		{name: "permanent error is not retried", failures: 5, err: permanent, wantCalls: 1, wantErr: permanent},
		{name: "connection reset is retried", failures: 1, err: fmt.Errorf("read: %w", syscall.ECONNRESET), wantCalls: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, calls := failTimes(tt.failures, tt.err)

			err := WithBackoff(context.Background(), fastConfig(3), fn)

			assert.Equal(t, tt.wantCalls, *calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithBackoff_ExhaustedErrorMentionsAttempts(t *testing.T) {
	fn, _ := failTimes(10, &HTTPError{StatusCode: http.StatusServiceUnavailable})

	err := WithBackoff(context.Background(), fastConfig(2), fn)
	assert.ErrorContains(t, err, "max retry attempts (2) exceeded")
}

func TestWithBackoff_ContextCancelStopsWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 5, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1}

	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := WithBackoff(ctx, cfg, func() error {
		calls++
		return &HTTPError{StatusCode: http.StatusInternalServerError}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithBackoff_RetryAfterIsCappedAtMaxDelay(t *testing.T) {
	throttled := &HTTPError{StatusCode: http.StatusTooManyRequests, RetryAfter: time.Hour}
	fn, calls := failTimes(1, throttled)

	start := time.Now()
	err := WithBackoff(context.Background(), fastConfig(3), fn)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
	assert.Less(t, time.Since(start), time.Second)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("boom"), false},
		{context.Canceled, false},
		{fmt.Errorf("fetch: %w", context.DeadlineExceeded), false},
		{syscall.ECONNREFUSED, true},
		{&HTTPError{StatusCode: http.StatusInternalServerError}, true},
		{&HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{&HTTPError{StatusCode: http.StatusRequestTimeout}, true},
		{&HTTPError{StatusCode: http.StatusForbidden}, false},
		{fmt.Errorf("wrapped: %w", &HTTPError{StatusCode: http.StatusBadGateway}), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRetryable(tt.err), "%v", tt.err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 30*time.Second, ParseRetryAfter("30", now))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("", now))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("-5", now))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("soon", now))
	assert.Equal(t, 2*time.Minute, ParseRetryAfter("Sat, 14 Mar 2026 10:02:00 GMT", now))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("Sat, 14 Mar 2026 09:00:00 GMT", now))
}

func TestAddJitter(t *testing.T) {
	d := 100 * time.Millisecond

	assert.Equal(t, d, addJitter(d, 0))
	for range 20 {
		j := addJitter(d, 0.5)
		assert.GreaterOrEqual(t, j, d)
		assert.LessOrEqual(t, j, d+d/2)
	}
}

func TestPresets(t *testing.T) {
	assert.Equal(t, 3, DefaultConfig().MaxAttempts)
	assert.Equal(t, 10*time.Second, ImportFetchConfig().MaxDelay)
}

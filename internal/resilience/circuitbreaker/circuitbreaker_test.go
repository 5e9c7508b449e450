package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsnow-blog/internal/observability/metrics"
)

var errRemote = errors.New("remote failed")

func testConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func fail() (int, error) { return 0, errRemote }

func TestNew_StartsClosed(t *testing.T) {
	cb := New(testConfig("test-closed"))

	assert.Equal(t, "test-closed", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-closed")))
}

func TestRun_ReturnsTypedResult(t *testing.T) {
	cb := New(testConfig("test-typed"))

	v, err := Run(cb, func() (string, error) { return "sha-1", nil })
	require.NoError(t, err)
	assert.Equal(t, "sha-1", v)

	n, err := Run(cb, fail)
	assert.ErrorIs(t, err, errRemote)
	assert.Zero(t, n)
}

func TestRun_OpensAfterThresholdAndRecovers(t *testing.T) {
	cb := New(testConfig("test-trip"))

	_, _ = Run(cb, fail)
	assert.False(t, cb.IsOpen(), "below MinRequests")
	_, _ = Run(cb, fail)
	require.True(t, cb.IsOpen())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-trip")))

	called := false
	_, err := Run(cb, func() (int, error) {
		called = true
		return 1, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)

	// Timeout 経過後は half-open になり、成功で閉じる
	time.Sleep(80 * time.Millisecond)
	v, err := Run(cb, func() (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-trip")))
}

func TestRun_IsSuccessfulKeepsClientErrorsOut(t *testing.T) {
	errConflict := errors.New("409 conflict")
	cfg := testConfig("test-classify")
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, errConflict) }
	cb := New(cfg)

	for range 5 {
		_, err := Run(cb, func() (int, error) { return 0, errConflict })
		assert.ErrorIs(t, err, errConflict)
	}
	assert.False(t, cb.IsOpen())
}

func TestPresets(t *testing.T) {
	for _, cfg := range []Config{GitHubAPIConfig(), IndexingAPIConfig(), ImportFetchConfig()} {
		t.Run(cfg.Name, func(t *testing.T) {
			assert.NotEmpty(t, cfg.Name)
			assert.Positive(t, cfg.MaxRequests)
			assert.Positive(t, cfg.MinRequests)
			assert.Greater(t, cfg.FailureThreshold, 0.0)
			assert.LessOrEqual(t, cfg.FailureThreshold, 1.0)
			assert.Positive(t, cfg.Timeout)
		})
	}
	assert.Greater(t, ImportFetchConfig().Timeout, GitHubAPIConfig().Timeout)
}

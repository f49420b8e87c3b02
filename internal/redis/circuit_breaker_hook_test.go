package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerHook_NormalOperation(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	assert.Equal(t, circuitbreaker.ClosedState, hook.GetState())

	for i := 0; i < 10; i++ {
		processHook := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
			return nil
		})
		err := processHook(ctx, goredis.NewStringCmd(ctx, "get", "key"))
		assert.NoError(t, err)
	}

	assert.Equal(t, circuitbreaker.ClosedState, hook.GetState())
}

func TestCircuitBreakerHook_OpensAfterSustainedFailures(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	failing := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return errors.New("connection refused")
	})

	for i := 0; i < 10; i++ {
		_ = failing(ctx, goredis.NewStringCmd(ctx, "get", "key"))
	}

	assert.Equal(t, circuitbreaker.OpenState, hook.GetState())

	// While open, commands are rejected without calling next
	called := false
	rejected := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		called = true
		return nil
	})
	err := rejected(ctx, goredis.NewStringCmd(ctx, "set", "key", "value"))
	require.Error(t, err)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.False(t, called)
}

func TestCircuitBreakerHook_RedisNilIsNotFailure(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	missing := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return goredis.Nil
	})

	for i := 0; i < 10; i++ {
		err := missing(ctx, goredis.NewStringCmd(ctx, "get", "absent"))
		assert.Error(t, err)
	}

	assert.Equal(t, circuitbreaker.ClosedState, hook.GetState())
}

func TestCircuitBreakerHook_ServesCachedReadsWhenOpen(t *testing.T) {
	hook := NewCircuitBreakerHook()
	ctx := context.Background()

	// Populate the fallback cache via a successful read
	success := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		cmd.(*goredis.StringCmd).SetVal("cached-value")
		return nil
	})
	cmd := goredis.NewStringCmd(ctx, "get", "mykey")
	require.NoError(t, success(ctx, cmd))

	// Trip the breaker
	failing := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		return errors.New("connection refused")
	})
	for i := 0; i < 10; i++ {
		_ = failing(ctx, goredis.NewStringCmd(ctx, "get", "other"))
	}
	require.Equal(t, circuitbreaker.OpenState, hook.GetState())

	// Cached key is still readable
	rejected := hook.ProcessHook(func(ctx context.Context, cmd goredis.Cmder) error {
		t.Fatal("next should not be called while circuit is open")
		return nil
	})
	fallbackCmd := goredis.NewStringCmd(ctx, "get", "mykey")
	err := rejected(ctx, fallbackCmd)
	require.NoError(t, err)
	val, err := fallbackCmd.Result()
	require.NoError(t, err)
	assert.Equal(t, "cached-value", val)

	// Uncached key fails fast
	missCmd := goredis.NewStringCmd(ctx, "get", "unknown")
	err = rejected(ctx, missCmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
}

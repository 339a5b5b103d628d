package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (RunLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	return NewRunLocker(client), mr
}

func TestRunLocker_Acquire(t *testing.T) {
	ctx := context.Background()

	t.Run("Deve adquirir o lock quando a janela está livre", func(t *testing.T) {
		locker, _ := newTestLocker(t)

		ok, err := locker.Acquire(ctx, "act_123", "2026-08-25-14")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Não deve adquirir o lock quando outra execução está em andamento", func(t *testing.T) {
		locker, _ := newTestLocker(t)

		first, err := locker.Acquire(ctx, "act_123", "2026-08-25-14")
		require.NoError(t, err)
		require.True(t, first)

		second, err := locker.Acquire(ctx, "act_123", "2026-08-25-14")

		require.NoError(t, err)
		assert.False(t, second)
	})

	t.Run("Janelas diferentes não competem pelo mesmo lock", func(t *testing.T) {
		locker, _ := newTestLocker(t)

		first, err := locker.Acquire(ctx, "act_123", "2026-08-25-14")
		require.NoError(t, err)
		require.True(t, first)

		other, err := locker.Acquire(ctx, "act_123", "2026-08-25-15")

		require.NoError(t, err)
		assert.True(t, other)
	})

	t.Run("Deve readquirir após a liberação", func(t *testing.T) {
		locker, _ := newTestLocker(t)

		ok, err := locker.Acquire(ctx, "act_123", "2026-08-25-14")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, locker.Release(ctx, "act_123", "2026-08-25-14"))

		again, err := locker.Acquire(ctx, "act_123", "2026-08-25-14")

		require.NoError(t, err)
		assert.True(t, again)
	})

	t.Run("Deve readquirir após a expiração do TTL", func(t *testing.T) {
		locker, mr := newTestLocker(t)

		ok, err := locker.Acquire(ctx, "act_123", "2026-08-25-14")
		require.NoError(t, err)
		require.True(t, ok)

		mr.FastForward(3 * time.Hour)

		again, err := locker.Acquire(ctx, "act_123", "2026-08-25-14")

		require.NoError(t, err)
		assert.True(t, again)
	})
}

func TestRunLocker_ExecutedKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("Ação não marcada não consta como executada", func(t *testing.T) {
		locker, _ := newTestLocker(t)

		executed, err := locker.WasExecuted(ctx, "act_123:2026-08-25-14:abc:0:adjust_budget")

		require.NoError(t, err)
		assert.False(t, executed)
	})

	t.Run("Ação marcada consta como executada", func(t *testing.T) {
		locker, _ := newTestLocker(t)
		key := "act_123:2026-08-25-14:abc:0:adjust_budget"

		require.NoError(t, locker.MarkExecuted(ctx, key))

		executed, err := locker.WasExecuted(ctx, key)

		require.NoError(t, err)
		assert.True(t, executed)
	})
}

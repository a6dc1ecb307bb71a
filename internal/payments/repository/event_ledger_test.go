package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*EventLedger, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewEventLedger(client), mr
}

func TestEventLedger(t *testing.T) {
	t.Run("first mark wins, repeat does not", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		ctx := context.Background()

		first, err := ledger.MarkProcessed(ctx, "evt_1")
		require.NoError(t, err)
		assert.True(t, first)

		again, err := ledger.MarkProcessed(ctx, "evt_1")
		require.NoError(t, err)
		assert.False(t, again)
	})

	t.Run("seen reflects marks", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		ctx := context.Background()

		seen, err := ledger.Seen(ctx, "evt_1")
		require.NoError(t, err)
		assert.False(t, seen)

		_, err = ledger.MarkProcessed(ctx, "evt_1")
		require.NoError(t, err)

		seen, err = ledger.Seen(ctx, "evt_1")
		require.NoError(t, err)
		assert.True(t, seen)
	})

	t.Run("entries carry a TTL", func(t *testing.T) {
		ledger, mr := newTestLedger(t)

		_, err := ledger.MarkProcessed(context.Background(), "evt_1")
		require.NoError(t, err)

		assert.Greater(t, mr.TTL("stripe:event:evt_1").Seconds(), float64(0))
	})

	t.Run("entries expire", func(t *testing.T) {
		ledger, mr := newTestLedger(t)
		ctx := context.Background()

		_, err := ledger.MarkProcessed(ctx, "evt_1")
		require.NoError(t, err)

		mr.FastForward(processedTTL + 1)

		seen, err := ledger.Seen(ctx, "evt_1")
		require.NoError(t, err)
		assert.False(t, seen)
	})
}

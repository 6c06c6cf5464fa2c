package worker

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/pizza-delivery/internal/events"
)

func TestNotificationWorkerDeliversInOrderPerOrder(t *testing.T) {
	inner := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(inner, 4, zap.NewNop())

	var mu sync.Mutex
	seen := map[string][]string{}
	w.Subscribe(events.EventOrderStatusChanged, func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen[e.OrderID] = append(seen[e.OrderID], e.ID)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	for _, order := range []string{"o-1", "o-2"} {
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, w.Publish(ctx, events.Event{ID: id, Type: events.EventOrderStatusChanged, OrderID: order}))
		}
	}

	cancel()
	w.Wait()

	require.Equal(t, []string{"a", "b", "c"}, seen["o-1"])
	require.Equal(t, []string{"a", "b", "c"}, seen["o-2"])
}

func TestNotificationWorkerQueueFull(t *testing.T) {
	w := NewNotificationWorker(events.NewInMemoryDispatcher(), 1, zap.NewNop())

	for i := 0; i < channelBuffer; i++ {
		require.NoError(t, w.Publish(context.Background(), events.Event{OrderID: "o-1"}))
	}
	require.ErrorIs(t, w.Publish(context.Background(), events.Event{OrderID: "o-1"}), ErrQueueFull)
}

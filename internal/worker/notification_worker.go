package worker

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/pizza-delivery/internal/events"
)

const (
	defaultWorkers = 2
	channelBuffer  = 128
)

// ErrQueueFull is returned by Publish when the target worker is saturated.
var ErrQueueFull = errors.New("notification queue full")

// NotificationWorker moves event delivery off the request path. Events are
// sharded by order id so notifications for one order keep their order.
type NotificationWorker struct {
	next    events.Dispatcher
	workers []chan events.Event
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewNotificationWorker wraps next. If numWorkers <= 0, defaultWorkers is used.
func NewNotificationWorker(next events.Dispatcher, numWorkers int, logger *zap.Logger) *NotificationWorker {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &NotificationWorker{
		next:    next,
		workers: make([]chan events.Event, numWorkers),
		logger:  logger,
	}
	for i := range w.workers {
		w.workers[i] = make(chan events.Event, channelBuffer)
	}
	return w
}

// Start launches the worker goroutines. Workers drain their queues and exit
// once ctx is cancelled.
func (w *NotificationWorker) Start(ctx context.Context) {
	for i, ch := range w.workers {
		w.wg.Add(1)
		go w.run(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

// Publish enqueues the event without blocking.
func (w *NotificationWorker) Publish(_ context.Context, event events.Event) error {
	select {
	case w.workers[w.shardIndex(event.OrderID)] <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers handler on the wrapped dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.next.Subscribe(eventType, handler)
}

func (w *NotificationWorker) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(w.workers)))
}

func (w *NotificationWorker) run(ctx context.Context, id int, ch <-chan events.Event) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			w.drain(id, ch)
			return
		case event := <-ch:
			w.deliver(context.WithoutCancel(ctx), id, event)
		}
	}
}

func (w *NotificationWorker) drain(id int, ch <-chan events.Event) {
	for {
		select {
		case event := <-ch:
			w.deliver(context.Background(), id, event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, id int, event events.Event) {
	if err := w.next.Publish(ctx, event); err != nil {
		w.logger.Error("notification delivery failed",
			zap.Int("worker_id", id),
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
	}
}

var _ events.Dispatcher = (*NotificationWorker)(nil)

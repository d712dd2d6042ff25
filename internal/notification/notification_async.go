package notification

import (
	"context"
	"sync"
	"time"

	"go-shiftswap/internal/shared/contextutil"

	"go.uber.org/zap"
)

const defaultSendTimeout = 5 * time.Second

// AsyncDispatcher hands every send to its own goroutine and returns at once.
// Failures are logged and dropped.
type AsyncDispatcher struct {
	next    Dispatcher
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

func NewAsyncDispatcher(next Dispatcher, timeout time.Duration, logger ...*zap.Logger) *AsyncDispatcher {
	l := zap.L().Named("notification.async")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.async")
	}
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &AsyncDispatcher{next: next, timeout: timeout, logger: l}
}

func (d *AsyncDispatcher) Send(ctx context.Context, kind, recipientUserID string, payload map[string]any, opts SendOptions) error {
	sendCtx := contextutil.Detach(ctx)
	log := contextutil.GetLogger(ctx, d.logger)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error("notification send panicked", zap.String("kind", kind), zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(sendCtx, d.timeout)
		defer cancel()

		if err := d.next.Send(ctx, kind, recipientUserID, payload, opts); err != nil {
			log.Warn("notification send failed",
				zap.String("kind", kind),
				zap.String("recipient_user_id", recipientUserID),
				zap.Error(err),
			)
		}
	}()
	return nil
}

// Wait blocks until every in-flight send has finished.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}

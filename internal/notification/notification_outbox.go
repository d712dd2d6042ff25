package notification

import (
	"context"
	"encoding/json"
	"time"

	"go-shiftswap/internal/events"
	"go-shiftswap/internal/messaging/kafka"
	notificationerrors "go-shiftswap/internal/notification/errors"
	"go-shiftswap/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OutboxDispatcher records each notice as an outbox event; the worker
// publishes it to the notification topic.
type OutboxDispatcher struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewOutboxDispatcher(outbox kafka.OutboxRepository, logger ...*zap.Logger) *OutboxDispatcher {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &OutboxDispatcher{outbox: outbox, logger: l, now: time.Now}
}

func (d *OutboxDispatcher) Send(ctx context.Context, kind, recipientUserID string, payload map[string]any, opts SendOptions) error {
	if _, err := uuid.Parse(recipientUserID); err != nil {
		return notificationerrors.ErrInvalidRecipient
	}
	if kind == "" {
		return notificationerrors.ErrInvalidKind
	}

	eventID := uuid.New().String()
	body, err := json.Marshal(events.NotificationRequestedEvent{
		EventID:         eventID,
		EventType:       events.NotificationRequestedEventType,
		Kind:            kind,
		RecipientUserID: recipientUserID,
		Payload:         payload,
		Deeplink:        opts.Deeplink,
		RelatedType:     opts.RelatedType,
		RelatedID:       opts.RelatedID,
		OccurredAt:      d.now().UTC(),
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            eventID,
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "notification",
		AggregateID:   recipientUserID,
		EventType:     events.NotificationRequestedEventType,
		Topic:         events.NotificationTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}

	if err := d.outbox.Create(ctx, event); err != nil {
		d.logger.Error("enqueue notification failed",
			zap.String("kind", kind),
			zap.String("recipient_user_id", recipientUserID),
			zap.Error(err),
		)
		return err
	}

	d.logger.Debug("notification enqueued",
		zap.String("event_id", eventID),
		zap.String("kind", kind),
		zap.String("recipient_user_id", recipientUserID),
	)
	return nil
}

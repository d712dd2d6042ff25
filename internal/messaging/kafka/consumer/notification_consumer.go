package consumer

import (
	"context"
	"encoding/json"

	"go-shiftswap/internal/events"
	"go-shiftswap/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type NotificationStore interface {
	Store(ctx context.Context, event events.NotificationRequestedEvent) error
}

// ConsumeNotifications stores every notification event in the recipient's
// inbox. Malformed or invalid events are committed and dropped; storage
// failures are left uncommitted so the message is redelivered.
func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	store NotificationStore,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		handleNotificationMessage(ctx, reader, store, log, msg)
	}
}

func handleNotificationMessage(
	ctx context.Context,
	reader MessageReader,
	store NotificationStore,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.NotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode notification event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	if err := store.Store(ctx, event); err != nil {
		if apperror.Is(err, apperror.CodeInvalidInput) {
			log.Warn("invalid notification event, skipping",
				zap.String("event_id", event.EventID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			return
		}

		log.Error("store notification failed",
			zap.String("event_id", event.EventID),
			zap.String("recipient_user_id", event.RecipientUserID),
			zap.Error(err),
		)
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit notification message failed", zap.Error(err))
		return
	}

	log.Debug("notification event consumed",
		zap.String("event_id", event.EventID),
		zap.String("kind", event.Kind),
	)
}

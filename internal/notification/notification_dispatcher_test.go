package notification_test

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-shiftswap/internal/events"
	"go-shiftswap/internal/messaging/kafka"
	"go-shiftswap/internal/notification"
	notificationerrors "go-shiftswap/internal/notification/errors"
	mock_notification "go-shiftswap/internal/notification/mock"
	"go-shiftswap/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type payloadArg struct {
	check func(payload []byte) bool
}

func (p payloadArg) Match(v driver.Value) bool {
	b, ok := v.([]byte)
	return ok && p.check(b)
}

func TestOutboxDispatcher_Send(t *testing.T) {
	t.Run("success writes pending outbox event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		recipient := uuid.New().String()
		requestID := uuid.New().String()

		mock.ExpectExec(`INSERT INTO outbox_events`).
			WithArgs(
				sqlmock.AnyArg(),
				requestID,
				"notification",
				recipient,
				events.NotificationRequestedEventType,
				events.NotificationTopic,
				payloadArg{check: func(b []byte) bool {
					var ev events.NotificationRequestedEvent
					if err := json.Unmarshal(b, &ev); err != nil {
						return false
					}
					return ev.Kind == notification.KindSwapDecided &&
						ev.RecipientUserID == recipient &&
						ev.Deeplink == "/day-swaps/123" &&
						ev.Payload["decision"] == "APPROVED"
				}},
				kafka.OutboxStatusPending,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		d := notification.NewOutboxDispatcher(kafka.NewOutboxRepository(db))
		ctx := contextutil.WithRequestID(context.Background(), requestID)

		err = d.Send(ctx, notification.KindSwapDecided, recipient,
			map[string]any{"decision": "APPROVED"},
			notification.SendOptions{Deeplink: "/day-swaps/123"},
		)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative invalid recipient", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		d := notification.NewOutboxDispatcher(kafka.NewOutboxRepository(db))

		err = d.Send(context.Background(), notification.KindSwapDecided, "not-a-uuid", nil, notification.SendOptions{})

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidRecipient)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative storage error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO outbox_events`).WillReturnError(errors.New("db down"))
		d := notification.NewOutboxDispatcher(kafka.NewOutboxRepository(db))

		err = d.Send(context.Background(), notification.KindShiftSwapAdjustment, uuid.New().String(), map[string]any{}, notification.SendOptions{})

		assert.EqualError(t, err, "db down")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAsyncDispatcher_Send(t *testing.T) {
	t.Run("failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		next := mock_notification.NewMockDispatcher(ctrl)
		recipient := uuid.New().String()
		next.EXPECT().
			Send(gomock.Any(), notification.KindSwapDecided, recipient, gomock.Any(), gomock.Any()).
			Return(errors.New("broker unavailable"))

		d := notification.NewAsyncDispatcher(next, time.Second, zap.NewNop())

		err := d.Send(context.Background(), notification.KindSwapDecided, recipient, map[string]any{}, notification.SendOptions{})
		d.Wait()

		assert.NoError(t, err)
	})

	t.Run("send outlives the caller context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		next := mock_notification.NewMockDispatcher(ctrl)
		release := make(chan struct{})
		var sendErr error
		next.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, kind, recipient string, payload map[string]any, opts notification.SendOptions) error {
				<-release
				sendErr = ctx.Err()
				return nil
			})

		d := notification.NewAsyncDispatcher(next, time.Second, zap.NewNop())
		ctx, cancel := context.WithCancel(context.Background())

		err := d.Send(ctx, notification.KindShiftSwapAdjustment, uuid.New().String(), nil, notification.SendOptions{})
		cancel()
		close(release)
		d.Wait()

		assert.NoError(t, err)
		assert.NoError(t, sendErr)
	})
}

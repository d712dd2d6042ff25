package notification

import (
	"context"
	"errors"
	"time"

	"go-shiftswap/internal/events"
	notificationerrors "go-shiftswap/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	// Store saves an incoming event in the recipient's inbox. Replays of an
	// already stored event are accepted and ignored.
	Store(ctx context.Context, event events.NotificationRequestedEvent) error
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Store(ctx context.Context, event events.NotificationRequestedEvent) error {
	eventID, err := uuid.Parse(event.EventID)
	if err != nil {
		return notificationerrors.ErrInvalidEventID
	}
	userID, err := uuid.Parse(event.RecipientUserID)
	if err != nil {
		return notificationerrors.ErrInvalidRecipient
	}
	if event.Kind == "" {
		return notificationerrors.ErrInvalidKind
	}

	title, content := Render(event.Kind, event.Payload)
	n := &Notification{
		ID:        uuid.New(),
		EventID:   eventID,
		UserID:    userID,
		Type:      event.Kind,
		Title:     title,
		Content:   content,
		CreatedAt: event.OccurredAt,
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if event.Deeplink != "" {
		n.Deeplink = &event.Deeplink
	}
	if event.RelatedType != "" {
		n.RelatedType = &event.RelatedType
	}
	if relatedID, err := uuid.Parse(event.RelatedID); err == nil {
		n.RelatedID = &relatedID
	}

	if err := s.repo.Create(ctx, n); err != nil {
		if errors.Is(err, notificationerrors.ErrDuplicateEvent) {
			s.logger.Warn("notification already stored, skipping",
				zap.String("event_id", event.EventID),
				zap.String("user_id", event.RecipientUserID),
			)
			return nil
		}
		s.logger.Error("store notification failed",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("notification stored",
		zap.String("event_id", event.EventID),
		zap.String("user_id", event.RecipientUserID),
		zap.String("kind", event.Kind),
	)
	return nil
}

func (s *service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, notificationerrors.ErrInvalidUserID
	}
	items, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return notificationerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrNotificationNotFound
	}
	return s.repo.MarkRead(ctx, userID, id)
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:          n.ID.String(),
		Type:        n.Type,
		Title:       n.Title,
		Content:     n.Content,
		Deeplink:    n.Deeplink,
		RelatedType: n.RelatedType,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.RelatedID != nil {
		v := n.RelatedID.String()
		resp.RelatedID = &v
	}
	return resp
}

package events

import "time"

const (
	NotificationTopic              = "hr.notification.v1"
	NotificationRequestedEventType = "notification.requested"
)

type NotificationRequestedEvent struct {
	EventID         string         `json:"event_id"`
	EventType       string         `json:"event_type"`
	Kind            string         `json:"kind"`
	RecipientUserID string         `json:"recipient_user_id"`
	Payload         map[string]any `json:"payload"`
	Deeplink        string         `json:"deeplink,omitempty"`
	RelatedType     string         `json:"related_type,omitempty"`
	RelatedID       string         `json:"related_id,omitempty"`
	OccurredAt      time.Time      `json:"occurred_at"`
}

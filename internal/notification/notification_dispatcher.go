package notification

import "context"

//go:generate mockgen -source=notification_dispatcher.go -destination=mock/dispatcher_mock.go -package=mock

// Dispatcher delivers a notice to one user. Callers treat it as best effort:
// a failed send never undoes the work it reports on.
type Dispatcher interface {
	Send(ctx context.Context, kind, recipientUserID string, payload map[string]any, opts SendOptions) error
}

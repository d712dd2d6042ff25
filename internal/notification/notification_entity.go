package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_notifications_event"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_unread"`

	Type        string     `gorm:"type:varchar(50);not null"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Content     string     `gorm:"type:text;not null"`
	Deeplink    *string    `gorm:"type:varchar(500)"`
	RelatedType *string    `gorm:"type:varchar(50)"`
	RelatedID   *uuid.UUID `gorm:"type:uuid"`
	IsRead      bool       `gorm:"not null;default:false;index:idx_notifications_user_unread"`

	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}

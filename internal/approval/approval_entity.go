package approval

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DecisionPending  = "PENDING"
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

type Record struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SwapRequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_approval_records_request_level"`
	Level         int       `gorm:"not null;uniqueIndex:uq_approval_records_request_level"`

	ApproverUserID *uuid.UUID `gorm:"type:uuid"`
	ApproverRole   *string    `gorm:"type:varchar(50)"`

	Decision  string  `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Note      *string `gorm:"type:text"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Record) TableName() string {
	return "approval_records"
}

func (r Record) IsPending() bool {
	return r.Decision == DecisionPending
}

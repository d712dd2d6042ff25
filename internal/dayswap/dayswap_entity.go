package dayswap

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	CategoryDaySwap = "DAY_SWAP"

	requestNumberCounter = "DAY_SWAP"
	requestNumberPrefix  = "DSW"
)

// SwapRequest is the aggregate root. Status and CurrentLevel are derived
// from the approval records and only written by Decide.
type SwapRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_swap_requests_company_status"`
	RequestNumber string    `gorm:"type:varchar(30);not null"`
	UserID        uuid.UUID `gorm:"type:uuid;not null"`

	Category string `gorm:"type:varchar(50);not null;default:'DAY_SWAP'"`
	Reason   string `gorm:"type:text"`

	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_swap_requests_company_status"`
	CurrentLevel *int      `gorm:"type:int"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Pairs []SwapPair `gorm:"-"`
}

func (SwapRequest) TableName() string {
	return "swap_requests"
}

type SwapPair struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SwapRequestID uuid.UUID `gorm:"type:uuid;not null;index:idx_swap_pairs_request"`
	DayOff        time.Time `gorm:"type:date;not null"`
	DayWorked     time.Time `gorm:"type:date;not null"`
	Position      int       `gorm:"not null;default:0;index:idx_swap_pairs_request"`
}

func (SwapPair) TableName() string {
	return "swap_pairs"
}

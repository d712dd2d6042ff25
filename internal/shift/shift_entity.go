package shift

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusWork    = "WORK"
	StatusOff     = "OFF"
	StatusLeave   = "LEAVE"
	StatusHoliday = "HOLIDAY"
)

type Entry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_shift_entries_user_period"`

	PeriodStart   time.Time  `gorm:"type:date;not null;index:idx_shift_entries_user_period"`
	PeriodEnd     time.Time  `gorm:"type:date;not null;index:idx_shift_entries_user_period"`
	WorkStatus    string     `gorm:"type:varchar(20);not null"`
	WorkPatternID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Entry) TableName() string {
	return "shift_entries"
}

// Covers reports whether d falls inside the inclusive period.
func (e Entry) Covers(d time.Time) bool {
	d = Day(d)
	return !d.Before(Day(e.PeriodStart)) && !d.After(Day(e.PeriodEnd))
}

// Day strips the time of day, keeping the calendar date as UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

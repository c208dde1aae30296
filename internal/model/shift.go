package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift types, derived from the wall clock at start.
const (
	ShiftAM = "AM"
	ShiftPM = "PM"
)

// Shift is a bounded work session of one operator.
// A shift is open while EndTime is nil. StartTime is set once on creation and
// EndTime once on close; no other mutation happens.
type Shift struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primaryKey"`
	UserID    uuid.UUID  `gorm:"type:varchar(36);not null;index"`
	Date      string     `gorm:"type:varchar(10);not null"` // 2006-01-02
	Type      string     `gorm:"type:varchar(2);not null"`
	StartTime time.Time  `gorm:"not null"`
	EndTime   *time.Time `gorm:"index"`

	User User `gorm:"foreignKey:UserID"`
}

func (s *Shift) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Shift) IsOpen() bool { return s.EndTime == nil }

// ShiftTypeAt returns AM before noon and PM otherwise.
func ShiftTypeAt(t time.Time) string {
	if t.Hour() < 12 {
		return ShiftAM
	}
	return ShiftPM
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Column bounds. MaxVolumeLiters at MaxUnitPrice still fits decimal(12,2).
var (
	VolumeScale     int32 = 3
	MaxVolumeLiters       = decimal.NewFromInt(100_000)
	MaxUnitPrice          = decimal.NewFromInt(99_999)
)

// Transaction is one recorded pump dispense. Write-once: never updated or deleted.
type Transaction struct {
	ID        uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	ShiftID   uuid.UUID       `gorm:"type:varchar(36);not null;index"`
	PumpID    uint            `gorm:"not null;index"`
	Volume    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Bucket    PriceBucket     `gorm:"type:varchar(20);not null"`
	Date      time.Time       `gorm:"not null;index"`

	Pump Pump `gorm:"foreignKey:PumpID"`
}

func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

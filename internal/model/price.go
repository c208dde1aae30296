package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceBucket names one {fuel, rate class} pair, e.g. "Diesel" or "Diesel100".
type PriceBucket string

const bulkSuffix = "100"

// NormalBucket returns the per-liter bucket of a fuel family.
func NormalBucket(fuel string) PriceBucket { return PriceBucket(fuel) }

// BulkBucket returns the bulk-rate bucket of a fuel family.
func BulkBucket(fuel string) PriceBucket { return PriceBucket(fuel + bulkSuffix) }

// IsBulk reports whether b is a bulk-rate bucket.
func (b PriceBucket) IsBulk() bool {
	s := string(b)
	return len(s) > len(bulkSuffix) && s[len(s)-len(bulkSuffix):] == bulkSuffix
}

// Fuel returns the fuel family name of the bucket.
func (b PriceBucket) Fuel() string {
	if b.IsBulk() {
		return string(b)[:len(b)-len(bulkSuffix)]
	}
	return string(b)
}

// Price is one row of the append-only price log.
// Rows are never updated or deleted; the current price of a bucket is the
// most recent row by EffectiveDate, ties broken by Seq.
type Price struct {
	ID            uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	Seq           int64           `gorm:"not null;index"`
	FuelTypeID    uint            `gorm:"not null;index"`
	Name          PriceBucket     `gorm:"type:varchar(20);not null;index:idx_prices_name_effective"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EffectiveDate time.Time       `gorm:"not null;index:idx_prices_name_effective"`
	CreatedBy     *uuid.UUID      `gorm:"type:varchar(36)"`
}

func (p *Price) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Seq == 0 {
		p.Seq = time.Now().UnixNano()
	}
	return nil
}

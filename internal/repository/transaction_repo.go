package repository

import (
	"context"
	"time"

	"fuelpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionQuery filters the transaction history. Zero values mean "any".
type TransactionQuery struct {
	ShiftID *uuid.UUID
	PumpID  uint
	From    *time.Time // inclusive
	To      *time.Time // exclusive
	Page    int
	Limit   int
}

// PumpSum is one aggregate row keyed by pump.
type PumpSum struct {
	PumpID  uint
	TxCount int64
	Volume  decimal.Decimal
	Income  decimal.Decimal
}

// TransactionRepository is write-once: there is no Update or Delete.
type TransactionRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, t *model.Transaction) error
	List(ctx context.Context, q TransactionQuery) ([]model.Transaction, int64, error)
	// SumByPump aggregates volume and income per pump, optionally restricted
	// to one shift and/or to rows with date >= since.
	SumByPump(ctx context.Context, shiftID *uuid.UUID, since *time.Time) ([]PumpSum, error)
	DB() *gorm.DB
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository { return &transactionRepo{db: db} }

func (r *transactionRepo) DB() *gorm.DB { return r.db }

func (r *transactionRepo) CreateTx(ctx context.Context, tx *gorm.DB, t *model.Transaction) error {
	return tx.WithContext(ctx).Omit("Pump").Create(t).Error
}

func (r *transactionRepo) List(ctx context.Context, q TransactionQuery) ([]model.Transaction, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if q.ShiftID != nil {
			db = db.Where("shift_id = ?", *q.ShiftID)
		}
		if q.PumpID != 0 {
			db = db.Where("pump_id = ?", q.PumpID)
		}
		if q.From != nil {
			db = db.Where("date >= ?", *q.From)
		}
		if q.To != nil {
			db = db.Where("date < ?", *q.To)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Scopes(filter).Preload("Pump.FuelType").Order("date DESC")
	if q.Limit > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * q.Limit).Limit(q.Limit)
	}

	var rows []model.Transaction
	err := query.Find(&rows).Error
	return rows, total, err
}

func (r *transactionRepo) SumByPump(ctx context.Context, shiftID *uuid.UUID, since *time.Time) ([]PumpSum, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("pump_id, COUNT(*) AS tx_count, COALESCE(SUM(volume), 0) AS volume, COALESCE(SUM(price), 0) AS income")
	if shiftID != nil {
		q = q.Where("shift_id = ?", *shiftID)
	}
	if since != nil {
		q = q.Where("date >= ?", *since)
	}

	var sums []PumpSum
	err := q.Group("pump_id").Order("pump_id ASC").Scan(&sums).Error
	return sums, err
}

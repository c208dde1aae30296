package repository

import (
	"context"

	"fuelpos/internal/model"

	"gorm.io/gorm"
)

// PriceRepository is append-only: there is no Update or Delete.
type PriceRepository interface {
	AppendTx(ctx context.Context, tx *gorm.DB, prices []model.Price) error
	Current(ctx context.Context, bucket model.PriceBucket) (*model.Price, error)
	CurrentAll(ctx context.Context) ([]model.Price, error)
	History(ctx context.Context, bucket model.PriceBucket, page, limit int) ([]model.Price, int64, error)
	Count(ctx context.Context) (int64, error)
	DB() *gorm.DB
}

type priceRepo struct{ db *gorm.DB }

func NewPriceRepository(db *gorm.DB) PriceRepository { return &priceRepo{db: db} }

func (r *priceRepo) DB() *gorm.DB { return r.db }

func (r *priceRepo) AppendTx(ctx context.Context, tx *gorm.DB, prices []model.Price) error {
	if len(prices) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&prices).Error
}

// Current returns the latest row of one bucket.
func (r *priceRepo) Current(ctx context.Context, bucket model.PriceBucket) (*model.Price, error) {
	var p model.Price
	err := r.db.WithContext(ctx).
		Where("name = ?", bucket).
		Order("effective_date DESC").Order("seq DESC").
		First(&p).Error
	return &p, err
}

// CurrentAll returns the latest row of every bucket that has one.
func (r *priceRepo) CurrentAll(ctx context.Context) ([]model.Price, error) {
	var rows []model.Price
	if err := r.db.WithContext(ctx).
		Order("name ASC").Order("effective_date DESC").Order("seq DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	seen := make(map[model.PriceBucket]bool, len(rows))
	out := make([]model.Price, 0, 6)
	for _, p := range rows {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out, nil
}

// History returns one bucket's rows newest-first, paginated.
func (r *priceRepo) History(ctx context.Context, bucket model.PriceBucket, page, limit int) ([]model.Price, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	byBucket := func(db *gorm.DB) *gorm.DB {
		if bucket != "" {
			return db.Where("name = ?", bucket)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Price{}).Scopes(byBucket).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Price
	err := r.db.WithContext(ctx).Scopes(byBucket).
		Order("effective_date DESC").Order("seq DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *priceRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Price{}).Count(&n).Error
	return n, err
}

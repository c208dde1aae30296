package repository

import (
	"context"

	"fuelpos/internal/model"

	"gorm.io/gorm"
)

// FuelRepository serves the immutable reference data: fuel types and pumps.
type FuelRepository interface {
	ListFuelTypes(ctx context.Context) ([]model.FuelType, error)
	ListPumps(ctx context.Context) ([]model.Pump, error)
	FindPump(ctx context.Context, id uint) (*model.Pump, error)
	// SeedReference inserts the given rows only into empty tables.
	SeedReference(ctx context.Context, fuels []model.FuelType, pumps []model.Pump) error
}

type fuelRepo struct{ db *gorm.DB }

func NewFuelRepository(db *gorm.DB) FuelRepository { return &fuelRepo{db: db} }

func (r *fuelRepo) ListFuelTypes(ctx context.Context) ([]model.FuelType, error) {
	var fuels []model.FuelType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&fuels).Error
	return fuels, err
}

func (r *fuelRepo) ListPumps(ctx context.Context) ([]model.Pump, error) {
	var pumps []model.Pump
	err := r.db.WithContext(ctx).Preload("FuelType").Order("id ASC").Find(&pumps).Error
	return pumps, err
}

func (r *fuelRepo) FindPump(ctx context.Context, id uint) (*model.Pump, error) {
	var p model.Pump
	err := r.db.WithContext(ctx).Preload("FuelType").First(&p, id).Error
	return &p, err
}

func (r *fuelRepo) SeedReference(ctx context.Context, fuels []model.FuelType, pumps []model.Pump) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.FuelType{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 && len(fuels) > 0 {
			if err := tx.Create(&fuels).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.Pump{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 && len(pumps) > 0 {
			if err := tx.Omit("FuelType").Create(&pumps).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

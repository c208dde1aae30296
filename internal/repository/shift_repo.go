package repository

import (
	"context"
	"time"

	"fuelpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShiftRepository interface {
	Create(ctx context.Context, s *model.Shift) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error)
	// ListOpen returns every shift with a null end_time, newest first.
	ListOpen(ctx context.Context) ([]model.Shift, error)
	// Close sets end_time on one open shift and returns the rows affected.
	Close(ctx context.Context, id uuid.UUID, end time.Time) (int64, error)
	List(ctx context.Context, page, limit int) ([]model.Shift, int64, error)
}

type shiftRepo struct{ db *gorm.DB }

func NewShiftRepository(db *gorm.DB) ShiftRepository { return &shiftRepo{db: db} }

func (r *shiftRepo) Create(ctx context.Context, s *model.Shift) error {
	return r.db.WithContext(ctx).Omit("User").Create(s).Error
}

func (r *shiftRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&s).Error
	return &s, err
}

func (r *shiftRepo) ListOpen(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).Preload("User").
		Where("end_time IS NULL").
		Order("start_time DESC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) Close(ctx context.Context, id uuid.UUID, end time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Shift{}).
		Where("id = ? AND end_time IS NULL", id).
		Update("end_time", end)
	return res.RowsAffected, res.Error
}

func (r *shiftRepo) List(ctx context.Context, page, limit int) ([]model.Shift, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Shift{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var shifts []model.Shift
	err := r.db.WithContext(ctx).Preload("User").
		Order("start_time DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&shifts).Error
	return shifts, total, err
}

package repository

import (
	"context"

	"fuelpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	CreateTx(ctx context.Context, tx *gorm.DB, u *model.User) error
	// FindByUsername returns active users only.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// ExistsByUsername also counts deactivated users, which still hold their name.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	// UpdatePasswordHash returns the number of rows changed; zero means no such user.
	UpdatePasswordHash(ctx context.Context, username, hash string) (int64, error)
	DB() *gorm.DB
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) DB() *gorm.DB { return r.db }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.CreateTx(ctx, r.db, u)
}

func (r *userRepo) CreateTx(ctx context.Context, tx *gorm.DB, u *model.User) error {
	return tx.WithContext(ctx).Create(u).Error
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ? AND active = ?", username, true).First(&u).Error
	return &u, err
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return &u, err
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}

func (r *userRepo) UpdatePasswordHash(ctx context.Context, username, hash string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Update("password_hash", hash)
	return res.RowsAffected, res.Error
}

package service

import (
	"context"
	"fmt"

	"fuelpos/internal/model"
	"fuelpos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedOptions controls first-run seeding. Empty usernames and the employee
// password fall back to the historical defaults.
type SeedOptions struct {
	AdminUsername    string
	AdminPassword    string
	EmployeeUsername string
	EmployeePassword string
	// InitialPrices is applied only when the price table is empty.
	InitialPrices map[string]decimal.Decimal
}

// SeedResult reports what Seed actually inserted.
type SeedResult struct {
	UsersCreated []string
	PricesSet    int
}

const (
	defaultAdminUsername    = "admin"
	defaultEmployeeUsername = "user123"
	defaultEmployeePassword = "qwertyuiop"
)

type SeedService interface {
	// SeedReference inserts fuel types and pumps into empty tables.
	SeedReference(ctx context.Context) error
	// Seed runs SeedReference, then creates the admin and employee accounts
	// when no user exists and the initial prices when no price exists.
	Seed(ctx context.Context, opts SeedOptions) (*SeedResult, error)
}

type seedService struct {
	fuels   repository.FuelRepository
	users   repository.UserRepository
	prices  repository.PriceRepository
	pricing PricingService
}

func NewSeedService(
	fuels repository.FuelRepository,
	users repository.UserRepository,
	prices repository.PriceRepository,
	pricing PricingService,
) SeedService {
	return &seedService{fuels: fuels, users: users, prices: prices, pricing: pricing}
}

func (s *seedService) SeedReference(ctx context.Context) error {
	return s.fuels.SeedReference(ctx, model.SeedFuelTypes, model.SeedPumps)
}

func (s *seedService) Seed(ctx context.Context, opts SeedOptions) (*SeedResult, error) {
	if err := s.SeedReference(ctx); err != nil {
		return nil, fmt.Errorf("seed reference data: %w", err)
	}
	res := &SeedResult{}

	nUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if nUsers == 0 {
		if opts.AdminPassword == "" {
			return nil, ErrAdminPasswordRequired
		}
		admin := orDefault(opts.AdminUsername, defaultAdminUsername)
		employee := orDefault(opts.EmployeeUsername, defaultEmployeeUsername)
		if admin == employee {
			return nil, fmt.Errorf("%w: admin and employee are both %q", ErrUserExists, admin)
		}
		adminUser, err := newAccount(admin, opts.AdminPassword, model.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		employeeUser, err := newAccount(employee, orDefault(opts.EmployeePassword, defaultEmployeePassword), model.RoleEmployee)
		if err != nil {
			return nil, fmt.Errorf("create employee: %w", err)
		}
		// Both accounts or neither: a half-seeded users table would skip this step forever.
		if err := runTx(ctx, s.users.DB(), func(tx *gorm.DB) error {
			for _, u := range []*model.User{adminUser, employeeUser} {
				if err := s.users.CreateTx(ctx, tx, u); err != nil {
					return fmt.Errorf("create %s: %w", u.Username, err)
				}
			}
			return nil
		}); err != nil {
			return nil, err
		}
		res.UsersCreated = []string{admin, employee}
		log.Info().Strs("users", res.UsersCreated).Msg("default accounts created")
	}

	if len(opts.InitialPrices) > 0 {
		nPrices, err := s.prices.Count(ctx)
		if err != nil {
			return nil, err
		}
		if nPrices == 0 {
			if _, err := s.pricing.SetPrices(ctx, nil, opts.InitialPrices); err != nil {
				return nil, fmt.Errorf("initial prices: %w", err)
			}
			res.PricesSet = len(opts.InitialPrices)
		}
	}
	return res, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

package service

import (
	"context"
	"errors"
	"testing"

	"fuelpos/internal/dto"
	"fuelpos/internal/model"
	"fuelpos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSeedService(st *stack) SeedService {
	return NewSeedService(st.store.fuels, st.store.users, st.store.prices, st.pricing)
}

func TestSeed_RequiresAdminPasswordOnFirstRun(t *testing.T) {
	st := newStack(t, nil)
	_, err := newSeedService(st).Seed(context.Background(), SeedOptions{})
	assert.ErrorIs(t, err, ErrAdminPasswordRequired)
}

func TestSeed_DefaultAccountsAndPrices(t *testing.T) {
	st := newStack(t, nil)
	ctx := context.Background()
	seed := newSeedService(st)

	res, err := seed.Seed(ctx, SeedOptions{
		AdminPassword: "root-pw",
		InitialPrices: map[string]decimal.Decimal{
			"Diesel":    decimal.NewFromInt(50),
			"Diesel100": decimal.NewFromInt(45),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "user123"}, res.UsersCreated)
	assert.Equal(t, 2, res.PricesSet)

	_, err = st.auth.Login(ctx, dto.LoginRequest{Username: "admin", Password: "root-pw"})
	assert.NoError(t, err)
	login, err := st.auth.Login(ctx, dto.LoginRequest{Username: "user123", Password: "qwertyuiop"})
	require.NoError(t, err)
	assert.Equal(t, "employee", login.User.Role)

	// A second run changes nothing.
	res, err = seed.Seed(ctx, SeedOptions{InitialPrices: map[string]decimal.Decimal{"Diesel": decimal.NewFromInt(1)}})
	require.NoError(t, err)
	assert.Empty(t, res.UsersCreated)
	assert.Zero(t, res.PricesSet)

	q, err := st.pricing.ComputePrice(ctx, 1, "10")
	require.NoError(t, err)
	assert.Equal(t, "500.00", q.Total.StringFixed(2))

	pumps, err := st.pricing.ListPumps(ctx)
	require.NoError(t, err)
	assert.Len(t, pumps, 6, "reference data is not duplicated")
}

func TestSeed_CustomUsernames(t *testing.T) {
	st := newStack(t, nil)
	res, err := newSeedService(st).Seed(context.Background(), SeedOptions{
		AdminUsername:    "boss",
		AdminPassword:    "pw",
		EmployeeUsername: "clerk",
		EmployeePassword: "pw2",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"boss", "clerk"}, res.UsersCreated)
	assert.Zero(t, res.PricesSet)
}

func TestSeed_DuplicateUsernamesCreateNothing(t *testing.T) {
	st := newStack(t, nil)
	ctx := context.Background()
	seed := newSeedService(st)

	_, err := seed.Seed(ctx, SeedOptions{AdminPassword: "pw", EmployeeUsername: "admin"})
	assert.ErrorIs(t, err, ErrUserExists)

	n, err := st.store.users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	res, err := seed.Seed(ctx, SeedOptions{AdminPassword: "pw"})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "user123"}, res.UsersCreated)
}

// failingUserRepo fails every insert after the first.
type failingUserRepo struct {
	repository.UserRepository
	calls int
}

func (r *failingUserRepo) CreateTx(ctx context.Context, tx *gorm.DB, u *model.User) error {
	r.calls++
	if r.calls > 1 {
		return errors.New("constraint failed")
	}
	return r.UserRepository.CreateTx(ctx, tx, u)
}

func TestSeed_AccountsAreAllOrNothing(t *testing.T) {
	st := newStack(t, nil)
	ctx := context.Background()
	users := &failingUserRepo{UserRepository: st.store.users}
	seed := NewSeedService(st.store.fuels, users, st.store.prices, st.pricing)

	_, err := seed.Seed(ctx, SeedOptions{AdminPassword: "pw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create user123")
	assert.Equal(t, 2, users.calls)

	n, err := st.store.users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "admin insert rolled back")

	// A later run still sees an empty users table and seeds both accounts.
	res, err := newSeedService(st).Seed(ctx, SeedOptions{AdminPassword: "pw"})
	require.NoError(t, err)
	assert.Len(t, res.UsersCreated, 2)
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"fuelpos/internal/cache"
	"fuelpos/internal/config"
	"fuelpos/internal/dto"
	"fuelpos/internal/infra"
	"fuelpos/internal/model"
	"fuelpos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() { bcryptCost = bcrypt.MinCost }

// testStore is a migrated in-memory SQLite database with reference data seeded.
type testStore struct {
	db     *gorm.DB
	users  repository.UserRepository
	fuels  repository.FuelRepository
	prices repository.PriceRepository
	shifts repository.ShiftRepository
	txs    repository.TransactionRepository
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	db, err := infra.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	s := &testStore{
		db:     db,
		users:  repository.NewUserRepository(db),
		fuels:  repository.NewFuelRepository(db),
		prices: repository.NewPriceRepository(db),
		shifts: repository.NewShiftRepository(db),
		txs:    repository.NewTransactionRepository(db),
	}
	require.NoError(t, s.fuels.SeedReference(context.Background(), model.SeedFuelTypes, model.SeedPumps))
	return s
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1, BulkThresholdLiters: 100}
}

// mkActor creates a user row and returns it as an Actor.
func (s *testStore) mkActor(t *testing.T, username, role string) Actor {
	t.Helper()
	u, err := NewAuthService(s.users, testConfig()).CreateUser(context.Background(), username, "secret", role)
	require.NoError(t, err)
	return Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

// setPrices appends the standard test price list: normal 50/60/55, bulk 45/54/50.
func (s *testStore) setPrices(t *testing.T, pricing PricingService) {
	t.Helper()
	_, err := pricing.SetPrices(context.Background(), nil, map[string]decimal.Decimal{
		"Diesel":      decimal.NewFromInt(50),
		"Diesel100":   decimal.NewFromInt(45),
		"Premium":     decimal.NewFromInt(60),
		"Premium100":  decimal.NewFromInt(54),
		"Unleaded":    decimal.NewFromInt(55),
		"Unleaded100": decimal.NewFromInt(50),
	})
	require.NoError(t, err)
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// recordingSink collects the shift summaries handed to the report pipeline.
type recordingSink struct {
	mu        sync.Mutex
	summaries []*dto.ShiftSummaryResponse
}

func (r *recordingSink) EnqueueShiftReport(_ context.Context, s *dto.ShiftSummaryResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, s)
	return nil
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.summaries)
}

// newStack wires every service over one store, the way the router does.
type stack struct {
	store   *testStore
	clock   *fakeClock
	sink    *recordingSink
	auth    AuthService
	pricing PricingService
	shifts  ShiftService
	txs     TransactionService
	reports ReportService
}

func newStack(t *testing.T, priceCache *cache.PriceCache) *stack {
	t.Helper()
	store := newTestStore(t)
	clock := newFakeClock(time.Date(2024, 5, 15, 8, 30, 0, 0, time.Local))
	sink := &recordingSink{}

	pricing := NewPricingService(store.prices, store.fuels, priceCache, 100)
	shifts := NewShiftService(store.shifts, store.txs, store.fuels, sink, clock.Now)
	txs := NewTransactionService(store.txs, shifts, pricing)
	txs.(*transactionService).now = clock.Now

	return &stack{
		store:   store,
		clock:   clock,
		sink:    sink,
		auth:    NewAuthService(store.users, testConfig()),
		pricing: pricing,
		shifts:  shifts,
		txs:     txs,
		reports: NewReportService(store.txs, store.fuels),
	}
}

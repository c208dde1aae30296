package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"fuelpos/internal/config"
	"fuelpos/internal/dto"
	"fuelpos/internal/infra"
	"fuelpos/internal/model"
	"fuelpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() { gin.SetMode(gin.TestMode) }

type sink struct {
	mu        sync.Mutex
	summaries []*dto.ShiftSummaryResponse
}

func (s *sink) EnqueueShiftReport(_ context.Context, summary *dto.ShiftSummaryResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, summary)
	return nil
}

type testEnv struct {
	app      *App
	db       *gorm.DB
	reports  *sink
	admin    string
	employee string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		Env:                 "test",
		JWTSecret:           "test-secret",
		JWTExpirationHours:  1,
		BulkThresholdLiters: 100,
	}
	db, err := infra.NewDatabase(":memory:")
	require.NoError(t, err)

	reports := &sink{}
	app := New(cfg, db, nil, reports, nil)

	_, err = app.Seeder.Seed(context.Background(), service.SeedOptions{
		AdminPassword: "admin-pw",
		InitialPrices: map[string]decimal.Decimal{
			"Diesel": decimal.NewFromInt(50), "Diesel100": decimal.NewFromInt(45),
			"Premium": decimal.NewFromInt(60), "Premium100": decimal.NewFromInt(54),
		},
	})
	require.NoError(t, err)

	env := &testEnv{app: app, db: db, reports: reports}
	env.admin = env.login(t, "admin", "admin-pw")
	env.employee = env.login(t, "user123", "qwertyuiop")
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.app.Engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/v1/auth/login", dto.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestShiftCycle(t *testing.T) {
	env := setupTestEnv(t)

	status := decode[dto.ShiftStatusResponse](t, env.do(t, http.MethodGet, "/v1/shifts/current", nil, env.employee))
	assert.False(t, status.Open)
	assert.Nil(t, status.Shift)

	w := env.do(t, http.MethodPost, "/v1/shifts/start", nil, env.employee)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	shift := decode[dto.ShiftResponse](t, w)
	assert.True(t, shift.Open)
	assert.Equal(t, "user123", shift.Username)

	w = env.do(t, http.MethodPost, "/v1/shifts/start", nil, env.admin)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/v1/pricing/quote", dto.QuoteRequest{PumpID: 1, Volume: "99"}, env.employee)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "4950.00", decode[dto.QuoteResponse](t, w).Price)

	w = env.do(t, http.MethodPost, "/v1/pricing/quote", dto.QuoteRequest{PumpID: 1, Volume: "100"}, env.employee)
	assert.Equal(t, "4500.00", decode[dto.QuoteResponse](t, w).Price)

	entries := []dto.TransactionEntry{{PumpID: 1, Volume: "60"}, {PumpID: 2, Volume: "150"}}
	w = env.do(t, http.MethodPost, "/v1/transactions", dto.SubmitTransactionsRequest{Entries: entries}, env.employee)
	assert.Equal(t, http.StatusBadRequest, w.Code, "confirmation required")

	w = env.do(t, http.MethodPost, "/v1/transactions", dto.SubmitTransactionsRequest{Entries: entries, Confirm: true}, env.employee)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	submitted := decode[dto.SubmitTransactionsResponse](t, w)
	require.Len(t, submitted.Transactions, 2)
	assert.True(t, decimal.NewFromInt(3000).Equal(submitted.Transactions[0].Price))
	assert.True(t, decimal.NewFromInt(6750).Equal(submitted.Transactions[1].Price))
	assert.True(t, decimal.NewFromInt(9750).Equal(submitted.Total))

	w = env.do(t, http.MethodPost, "/v1/shifts/end", nil, env.employee)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	summary := decode[dto.ShiftSummaryResponse](t, w)
	assert.True(t, decimal.NewFromInt(210).Equal(summary.Volume))
	assert.NotNil(t, summary.Shift.EndTime)
	require.Len(t, env.reports.summaries, 1)

	w = env.do(t, http.MethodGet, "/v1/shifts/"+shift.ID+"/summary", nil, env.employee)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decimal.NewFromInt(9750).Equal(decode[dto.ShiftSummaryResponse](t, w).Income))

	w = env.do(t, http.MethodPost, "/v1/transactions", dto.SubmitTransactionsRequest{Entries: entries, Confirm: true}, env.employee)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code, "no open shift")

	dash := decode[dto.DashboardResponse](t, env.do(t, http.MethodGet, "/v1/reports/dashboard", nil, env.admin))
	assert.True(t, decimal.NewFromInt(210).Equal(dash.All.Lifetime.Volume))
	assert.True(t, decimal.NewFromInt(9750).Equal(dash.All.Today.Income))

	list := decode[dto.TransactionListResponse](t, env.do(t, http.MethodGet, "/v1/transactions?pump_id=1", nil, env.employee))
	assert.Equal(t, int64(1), list.Total)
}

func TestShiftEnd_OtherEmployeeForbidden(t *testing.T) {
	env := setupTestEnv(t)
	w := env.do(t, http.MethodPost, "/v1/users", dto.CreateUserRequest{Username: "night", Password: "night-pw", Role: "employee"}, env.admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	other := env.login(t, "night", "night-pw")

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/shifts/start", nil, env.employee).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/v1/shifts/end", nil, other).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/v1/shifts/end", nil, env.admin).Code, "admins may end any shift")
	assert.Equal(t, http.StatusPreconditionFailed, env.do(t, http.MethodPost, "/v1/shifts/end", nil, env.admin).Code)
}

func TestValidationErrors(t *testing.T) {
	env := setupTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/shifts/start", nil, env.employee).Code)

	w := env.do(t, http.MethodPost, "/v1/pricing/quote", dto.QuoteRequest{PumpID: 1, Volume: "abc"}, env.employee)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, "/v1/pricing/quote", dto.QuoteRequest{PumpID: 99, Volume: "10"}, env.employee)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/v1/pricing/quote", dto.QuoteRequest{PumpID: 5, Volume: "10"}, env.employee)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code, "Unleaded has no price yet")

	w = env.do(t, http.MethodPost, "/v1/transactions", map[string]any{"confirm": true}, env.employee)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"Entries"`)

	w = env.do(t, http.MethodGet, "/v1/transactions?from=2024-05-10&to=2024-05-01", nil, env.employee)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/v1/shifts/not-a-uuid/summary", nil, env.employee)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{"/v1/reports/dashboard", "/v1/users", "/v1/shifts", "/v1/prices/history"} {
		assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, path, nil, env.employee).Code, path)
		assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, path, nil, env.admin).Code, path)
	}
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/v1/pumps", nil, "").Code)

	w := env.do(t, http.MethodPost, "/v1/prices", dto.SetPricesRequest{Prices: map[string]decimal.Decimal{
		"Unleaded": decimal.NewFromInt(55), "Unleaded100": decimal.NewFromInt(50),
	}}, env.admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, decode[dto.CurrentPricesResponse](t, w).Data, 6)

	w = env.do(t, http.MethodPost, "/v1/prices", dto.SetPricesRequest{Prices: map[string]decimal.Decimal{
		"Kerosene": decimal.NewFromInt(10),
	}}, env.admin)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	history := decode[dto.PriceHistoryResponse](t, env.do(t, http.MethodGet, "/v1/prices/history?name=Diesel", nil, env.admin))
	assert.Equal(t, int64(1), history.Total)

	w = env.do(t, http.MethodPost, "/v1/users", dto.CreateUserRequest{Username: "admin", Password: "pw12", Role: "admin"}, env.admin)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/v1/users/password", dto.ChangePasswordRequest{Username: "user123", NewPassword: "changed"}, env.admin)
	assert.Equal(t, http.StatusNoContent, w.Code)
	env.login(t, "user123", "changed")

	w = env.do(t, http.MethodPost, "/v1/users/password", dto.ChangePasswordRequest{Username: "ghost", NewPassword: "changed"}, env.admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	w := env.do(t, http.MethodPost, "/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"invalid username or password"}`, w.Body.String())
}

func TestStaleShifts(t *testing.T) {
	env := setupTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/shifts/start", nil, env.employee).Code)

	stale := decode[dto.StaleShiftsResponse](t, env.do(t, http.MethodGet, "/v1/shifts/stale", nil, env.admin))
	assert.Len(t, stale.Data, 1)

	closed := decode[dto.CloseStaleResponse](t, env.do(t, http.MethodPost, "/v1/shifts/stale/close", nil, env.admin))
	assert.Equal(t, 1, closed.Closed)
	assert.NoError(t, env.app.Shifts.CanShutdown())
}

func TestShutdownGuard(t *testing.T) {
	env := setupTestEnv(t)
	assert.NoError(t, env.app.Shifts.CanShutdown())
	w := env.do(t, http.MethodPost, "/v1/shifts/start", nil, env.employee)
	require.Equal(t, http.StatusCreated, w.Code)
	started := decode[dto.ShiftResponse](t, w)

	assert.ErrorIs(t, env.app.Shifts.CanShutdown(), service.ErrShiftOpen)

	// The refused shutdown leaves the open shift row exactly as it was.
	var shifts []model.Shift
	require.NoError(t, env.db.Find(&shifts).Error)
	require.Len(t, shifts, 1)
	assert.Equal(t, started.ID, shifts[0].ID.String())
	assert.Nil(t, shifts[0].EndTime)

	status := decode[dto.ShiftStatusResponse](t, env.do(t, http.MethodGet, "/v1/shifts/current", nil, env.employee))
	assert.True(t, status.Open)
}

func TestExportAndHealth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/reports/export.xlsx", nil, env.admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "PK", string(w.Body.Bytes()[:2]), "xlsx is a zip archive")

	w = env.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"disabled","smtp":"disabled"}`, w.Body.String())
}

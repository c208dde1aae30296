package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"fuelpos/internal/dto"
	"fuelpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPeriodStarts(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 5, 15, 17, 45, 0, 0, time.UTC)
	day, week, month, year := PeriodStarts(now)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), week)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), month)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), year)

	// Sunday belongs to the week that started the previous Monday.
	_, week, _, _ = PeriodStarts(time.Date(2024, 5, 19, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), week)

	// Monday starts its own week.
	_, week, _, _ = PeriodStarts(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), week)
}

// insertTx writes a transaction row directly with a chosen date.
func insertTx(t *testing.T, st *stack, shiftID uuid.UUID, pump uint, volume, price int64, at time.Time) {
	t.Helper()
	require.NoError(t, st.store.db.Create(&model.Transaction{
		ShiftID:   shiftID,
		PumpID:    pump,
		Volume:    decimal.NewFromInt(volume),
		UnitPrice: decimal.NewFromInt(price / volume),
		Price:     decimal.NewFromInt(price),
		Bucket:    "Diesel",
		Date:      at.UTC(),
	}).Error)
}

func TestDashboard_Windows(t *testing.T) {
	st := newStack(t, nil)
	ctx := context.Background()
	shift := uuid.New()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local) // Wednesday

	insertTx(t, st, shift, 1, 10, 500, now.Add(-time.Hour))             // today
	insertTx(t, st, shift, 2, 20, 1000, now.AddDate(0, 0, -2))          // Monday, this week
	insertTx(t, st, shift, 3, 30, 1800, now.AddDate(0, 0, -10))         // this month
	insertTx(t, st, shift, 5, 40, 2200, now.AddDate(0, -3, 0))          // this year
	insertTx(t, st, shift, 6, 50, 2500, now.AddDate(-1, 0, 0))          // lifetime only

	dash, err := st.reports.Dashboard(ctx, now)
	require.NoError(t, err)

	all := dash.All
	assert.Equal(t, "500", all.Today.Income.String())
	assert.Equal(t, "1500", all.Week.Income.String())
	assert.Equal(t, "3300", all.Month.Income.String())
	assert.Equal(t, "5500", all.Year.Income.String())
	assert.Equal(t, "8000", all.Lifetime.Income.String())
	assert.Equal(t, "150", all.Lifetime.Volume.String())

	require.Len(t, dash.Fuels, 3)
	diesel := dash.Fuels[0]
	assert.Equal(t, "Diesel", diesel.Fuel)
	assert.Equal(t, "1500", diesel.Week.Income.String())
	assert.Equal(t, "30", diesel.Lifetime.Volume.String())

	unleaded := dash.Fuels[2]
	assert.Equal(t, "0", unleaded.Month.Income.String())
	assert.Equal(t, "4700", unleaded.Lifetime.Income.String())

	require.Len(t, dash.Pumps, 6)
	assert.Equal(t, uint(4), dash.Pumps[3].PumpID)
	assert.True(t, dash.Pumps[3].Lifetime.Income.IsZero())
}

func TestSeries_Granularities(t *testing.T) {
	st := newStack(t, nil)
	ctx := context.Background()
	shift := uuid.New()

	insertTx(t, st, shift, 1, 10, 500, time.Date(2024, 5, 13, 9, 0, 0, 0, time.Local))
	insertTx(t, st, shift, 2, 10, 500, time.Date(2024, 5, 13, 15, 0, 0, 0, time.Local))
	insertTx(t, st, shift, 3, 10, 600, time.Date(2024, 5, 20, 9, 0, 0, 0, time.Local))
	insertTx(t, st, shift, 1, 10, 500, time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local))

	day, err := st.reports.Series(ctx, dto.SeriesRequest{Granularity: "day", From: "2024-05-13", To: "2024-05-20"})
	require.NoError(t, err)
	require.Len(t, day.Points, 2)
	assert.Equal(t, "2024-05-13", day.Points[0].Bucket)
	assert.Equal(t, "Diesel", day.Points[0].Fuel)
	assert.Equal(t, "1000", day.Points[0].Income.String())
	assert.Equal(t, "2024-05-20", day.Points[1].Bucket)
	assert.Equal(t, "Premium", day.Points[1].Fuel)

	week, err := st.reports.Series(ctx, dto.SeriesRequest{Granularity: "week", From: "2024-05-01", To: "2024-06-30"})
	require.NoError(t, err)
	require.Len(t, week.Points, 3)
	assert.Equal(t, "2024-W20", week.Points[0].Bucket)
	assert.Equal(t, "2024-W21", week.Points[1].Bucket)
	assert.Equal(t, "2024-W22", week.Points[2].Bucket)

	month, err := st.reports.Series(ctx, dto.SeriesRequest{Granularity: "month", From: "2024-01-01", To: "2024-12-31"})
	require.NoError(t, err)
	require.Len(t, month.Points, 3)
	assert.Equal(t, "2024-05", month.Points[0].Bucket)
	assert.Equal(t, "2024-06", month.Points[2].Bucket)

	year, err := st.reports.Series(ctx, dto.SeriesRequest{Granularity: "year", From: "2024-01-01", To: "2024-12-31"})
	require.NoError(t, err)
	require.Len(t, year.Points, 2)
	assert.Equal(t, "2024", year.Points[0].Bucket)
	assert.Equal(t, "1500", year.Points[0].Income.String())

	_, err = st.reports.Series(ctx, dto.SeriesRequest{Granularity: "hour", From: "2024-01-01", To: "2024-12-31"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = st.reports.Series(ctx, dto.SeriesRequest{Granularity: "day", From: "2024-12-31", To: "2024-01-01"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestExportXLSX(t *testing.T) {
	st := newStack(t, nil)
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	insertTx(t, st, uuid.New(), 1, 60, 3000, now.Add(-time.Hour))

	var buf bytes.Buffer
	require.NoError(t, st.reports.ExportXLSX(ctx, &buf, now))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Dashboard", "Transactions"}, f.GetSheetList())
	price, err := f.GetCellValue("Transactions", "H2")
	require.NoError(t, err)
	assert.Equal(t, "3000", price)
}

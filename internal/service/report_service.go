package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"fuelpos/internal/dto"
	"fuelpos/internal/infra"
	"fuelpos/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService computes income and volume aggregates. Nothing is cached:
// every call reads the transaction table.
type ReportService interface {
	Dashboard(ctx context.Context, now time.Time) (*dto.DashboardResponse, error)
	Series(ctx context.Context, req dto.SeriesRequest) (*dto.SeriesResponse, error)
	ExportXLSX(ctx context.Context, w io.Writer, now time.Time) error
}

type reportService struct {
	txRepo repository.TransactionRepository
	fuels  repository.FuelRepository
}

func NewReportService(txRepo repository.TransactionRepository, fuels repository.FuelRepository) ReportService {
	return &reportService{txRepo: txRepo, fuels: fuels}
}

// PeriodStarts returns the local start of today, the ISO week (Monday),
// the month and the year containing now.
func PeriodStarts(now time.Time) (day, week, month, year time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	day = time.Date(y, m, d, 0, 0, 0, 0, loc)
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	week = day.AddDate(0, 0, -offset)
	month = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	year = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	return day, week, month, year
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func (s *reportService) Dashboard(ctx context.Context, now time.Time) (*dto.DashboardResponse, error) {
	pumps, err := s.fuels.ListPumps(ctx)
	if err != nil {
		return nil, err
	}
	fuelTypes, err := s.fuels.ListFuelTypes(ctx)
	if err != nil {
		return nil, err
	}

	day, week, month, year := PeriodStarts(now)
	windows := []*time.Time{&day, &week, &month, &year, nil}

	// sums[w][pumpID] for each window, lifetime last.
	sums := make([]map[uint]repository.PumpSum, len(windows))
	for i, since := range windows {
		var from *time.Time
		if since != nil {
			utc := since.UTC()
			from = &utc
		}
		rows, err := s.txRepo.SumByPump(ctx, nil, from)
		if err != nil {
			return nil, err
		}
		sums[i] = make(map[uint]repository.PumpSum, len(rows))
		for _, r := range rows {
			sums[i][r.PumpID] = r
		}
	}

	periodOf := func(pumpID uint) dto.PeriodTotals {
		t := make([]dto.Totals, len(windows))
		for i := range windows {
			r := sums[i][pumpID]
			t[i] = dto.Totals{Income: decimal.Zero.Add(r.Income), Volume: decimal.Zero.Add(r.Volume)}
		}
		return dto.PeriodTotals{Today: t[0], Week: t[1], Month: t[2], Year: t[3], Lifetime: t[4]}
	}

	resp := &dto.DashboardResponse{
		GeneratedAt: now.Format(time.RFC3339),
		Fuels:       make([]dto.FuelPeriodTotals, len(fuelTypes)),
		Pumps:       make([]dto.PumpPeriodTotals, len(pumps)),
		All:         zeroPeriod(),
	}
	fuelIdx := make(map[uint]int, len(fuelTypes))
	for i, f := range fuelTypes {
		fuelIdx[f.ID] = i
		resp.Fuels[i] = dto.FuelPeriodTotals{Fuel: f.Name, PeriodTotals: zeroPeriod()}
	}
	for i, p := range pumps {
		pt := periodOf(p.ID)
		resp.Pumps[i] = dto.PumpPeriodTotals{PumpID: p.ID, Label: p.Label, Fuel: p.FuelType.Name, PeriodTotals: pt}
		if fi, ok := fuelIdx[p.FuelTypeID]; ok {
			resp.Fuels[fi].PeriodTotals = addPeriod(resp.Fuels[fi].PeriodTotals, pt)
		}
		resp.All = addPeriod(resp.All, pt)
	}
	return resp, nil
}

// ── Series ────────────────────────────────────────────────────────────────────

func (s *reportService) Series(ctx context.Context, req dto.SeriesRequest) (*dto.SeriesResponse, error) {
	from, err := time.ParseInLocation("2006-01-02", req.From, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: from %q", ErrInvalidFilter, req.From)
	}
	to, err := time.ParseInLocation("2006-01-02", req.To, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: to %q", ErrInvalidFilter, req.To)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: from is after to", ErrInvalidFilter)
	}
	keyOf, err := seriesKeyFunc(req.Granularity)
	if err != nil {
		return nil, err
	}

	fromUTC := from.UTC()
	toUTC := to.AddDate(0, 0, 1).UTC()
	rows, _, err := s.txRepo.List(ctx, repository.TransactionQuery{From: &fromUTC, To: &toUTC})
	if err != nil {
		return nil, err
	}

	type key struct{ bucket, fuel string }
	acc := make(map[key]*dto.Totals)
	for _, t := range rows {
		k := key{bucket: keyOf(t.Date.In(time.Local)), fuel: t.Pump.FuelType.Name}
		tot, ok := acc[k]
		if !ok {
			tot = &dto.Totals{Income: decimal.Zero, Volume: decimal.Zero}
			acc[k] = tot
		}
		tot.Income = tot.Income.Add(t.Price)
		tot.Volume = tot.Volume.Add(t.Volume)
	}

	points := make([]dto.SeriesPoint, 0, len(acc))
	for k, t := range acc {
		points = append(points, dto.SeriesPoint{Bucket: k.bucket, Fuel: k.fuel, Totals: *t})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Bucket != points[j].Bucket {
			return points[i].Bucket < points[j].Bucket
		}
		return points[i].Fuel < points[j].Fuel
	})
	return &dto.SeriesResponse{Granularity: req.Granularity, Points: points}, nil
}

func seriesKeyFunc(granularity string) (func(time.Time) string, error) {
	switch granularity {
	case "day":
		return func(t time.Time) string { return t.Format("2006-01-02") }, nil
	case "week":
		return func(t time.Time) string {
			y, w := t.ISOWeek()
			return fmt.Sprintf("%04d-W%02d", y, w)
		}, nil
	case "month":
		return func(t time.Time) string { return t.Format("2006-01") }, nil
	case "year":
		return func(t time.Time) string { return t.Format("2006") }, nil
	}
	return nil, fmt.Errorf("%w: granularity %q", ErrInvalidFilter, granularity)
}

// ── Export ────────────────────────────────────────────────────────────────────

func (s *reportService) ExportXLSX(ctx context.Context, w io.Writer, now time.Time) error {
	dash, err := s.Dashboard(ctx, now)
	if err != nil {
		return err
	}
	rows, _, err := s.txRepo.List(ctx, repository.TransactionQuery{})
	if err != nil {
		return err
	}
	txs := make([]dto.TransactionResponse, len(rows))
	for i := range rows {
		txs[i] = transactionToResponse(&rows[i])
	}
	return infra.WriteReportXLSX(w, dash, txs)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func zeroPeriod() dto.PeriodTotals {
	z := dto.Totals{Income: decimal.Zero, Volume: decimal.Zero}
	return dto.PeriodTotals{Today: z, Week: z, Month: z, Year: z, Lifetime: z}
}

func addTotals(a, b dto.Totals) dto.Totals {
	return dto.Totals{Income: a.Income.Add(b.Income), Volume: a.Volume.Add(b.Volume)}
}

func addPeriod(a, b dto.PeriodTotals) dto.PeriodTotals {
	return dto.PeriodTotals{
		Today:    addTotals(a.Today, b.Today),
		Week:     addTotals(a.Week, b.Week),
		Month:    addTotals(a.Month, b.Month),
		Year:     addTotals(a.Year, b.Year),
		Lifetime: addTotals(a.Lifetime, b.Lifetime),
	}
}

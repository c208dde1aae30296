package dto

import "github.com/shopspring/decimal"

// Totals is one income/volume pair.
type Totals struct {
	Income decimal.Decimal `json:"income"`
	Volume decimal.Decimal `json:"volume"`
}

// PeriodTotals groups the dashboard windows.
type PeriodTotals struct {
	Today    Totals `json:"today"`
	Week     Totals `json:"week"`
	Month    Totals `json:"month"`
	Year     Totals `json:"year"`
	Lifetime Totals `json:"lifetime"`
}

type FuelPeriodTotals struct {
	Fuel string `json:"fuel"`
	PeriodTotals
}

type PumpPeriodTotals struct {
	PumpID uint   `json:"pump_id"`
	Label  string `json:"label"`
	Fuel   string `json:"fuel"`
	PeriodTotals
}

type DashboardResponse struct {
	GeneratedAt string             `json:"generated_at"`
	Fuels       []FuelPeriodTotals `json:"fuels"`
	Pumps       []PumpPeriodTotals `json:"pumps"`
	All         PeriodTotals       `json:"all"`
}

type SeriesRequest struct {
	Granularity string `form:"granularity" validate:"required,oneof=day week month year"`
	From        string `form:"from"        validate:"required,datetime=2006-01-02"`
	To          string `form:"to"          validate:"required,datetime=2006-01-02"`
}

type SeriesPoint struct {
	Bucket string `json:"bucket"`
	Fuel   string `json:"fuel"`
	Totals
}

type SeriesResponse struct {
	Granularity string        `json:"granularity"`
	Points      []SeriesPoint `json:"points"`
}

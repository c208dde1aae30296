package dto

import "github.com/shopspring/decimal"

// SetPricesRequest appends one price row per provided bucket.
// Keys are bucket names: Diesel, Diesel100, Premium, Premium100, Unleaded, Unleaded100.
type SetPricesRequest struct {
	Prices map[string]decimal.Decimal `json:"prices" validate:"required,min=1"`
}

type PriceItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Fuel          string          `json:"fuel"`
	Bulk          bool            `json:"bulk"`
	Price         decimal.Decimal `json:"price"`
	EffectiveDate string          `json:"effective_date"`
}

type CurrentPricesResponse struct {
	Data []PriceItem `json:"data"`
}

type PriceHistoryResponse struct {
	Data  []PriceItem `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

type PumpResponse struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Fuel  string `json:"fuel"`
}

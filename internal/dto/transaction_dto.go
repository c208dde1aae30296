package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// QuoteRequest carries the raw volume string typed by the operator.
type QuoteRequest struct {
	PumpID uint   `json:"pump_id" validate:"required,min=1"`
	Volume string `json:"volume"  validate:"required"`
}

type TransactionEntry struct {
	PumpID uint   `json:"pump_id" validate:"required,min=1"`
	Volume string `json:"volume"  validate:"required"`
}

// SubmitTransactionsRequest records every non-empty pump entry at once.
// Confirm is the operator's yes/no answer; nothing is written without it.
type SubmitTransactionsRequest struct {
	Entries []TransactionEntry `json:"entries" validate:"required,min=1,dive"`
	Confirm bool               `json:"confirm"`
}

type TransactionFilter struct {
	ShiftID string `form:"shift_id"`
	PumpID  uint   `form:"pump_id"`
	From    string `form:"from"` // 2006-01-02, inclusive
	To      string `form:"to"`   // 2006-01-02, inclusive
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type QuoteResponse struct {
	PumpID    uint            `json:"pump_id"`
	Fuel      string          `json:"fuel"`
	Bucket    string          `json:"bucket"`
	Volume    decimal.Decimal `json:"volume"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Price     string          `json:"price"` // two decimals
}

type TransactionResponse struct {
	ID        string          `json:"id"`
	ShiftID   string          `json:"shift_id"`
	PumpID    uint            `json:"pump_id"`
	Fuel      string          `json:"fuel,omitempty"`
	Bucket    string          `json:"bucket"`
	Volume    decimal.Decimal `json:"volume"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Price     decimal.Decimal `json:"price"`
	Date      string          `json:"date"`
}

type SubmitTransactionsResponse struct {
	ShiftID      string                `json:"shift_id"`
	Transactions []TransactionResponse `json:"transactions"`
	Total        decimal.Decimal       `json:"total"`
}

type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

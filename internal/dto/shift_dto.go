package dto

import "github.com/shopspring/decimal"

type ShiftResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username,omitempty"`
	Date      string  `json:"date"`
	Type      string  `json:"type"` // AM | PM
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Open      bool    `json:"open"`
}

// ShiftStatusResponse mirrors the session state: open is false and shift nil when closed.
type ShiftStatusResponse struct {
	Open  bool           `json:"open"`
	Shift *ShiftResponse `json:"shift"`
}

type ShiftListResponse struct {
	Data  []ShiftResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type PumpTotals struct {
	PumpID       uint            `json:"pump_id"`
	Label        string          `json:"label"`
	Fuel         string          `json:"fuel"`
	Transactions int64           `json:"transactions"`
	Volume       decimal.Decimal `json:"volume"`
	Income       decimal.Decimal `json:"income"`
}

type ShiftSummaryResponse struct {
	Shift  ShiftResponse   `json:"shift"`
	Pumps  []PumpTotals    `json:"pumps"`
	Volume decimal.Decimal `json:"volume"`
	Income decimal.Decimal `json:"income"`
}

type StaleShiftsResponse struct {
	Data []ShiftResponse `json:"data"`
}

type CloseStaleResponse struct {
	Closed int `json:"closed"`
}

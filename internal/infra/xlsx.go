package infra

import (
	"fmt"
	"io"

	"fuelpos/internal/dto"

	"github.com/xuri/excelize/v2"
)

// WriteReportXLSX writes the dashboard and the transaction list as a workbook
// with two sheets: "Dashboard" and "Transactions".
func WriteReportXLSX(w io.Writer, dash *dto.DashboardResponse, txs []dto.TransactionResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	const dashSheet = "Dashboard"
	const txSheet = "Transactions"
	if err := f.SetSheetName("Sheet1", dashSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(txSheet); err != nil {
		return err
	}

	header := []any{"Scope", "Name",
		"Today income", "Today liters",
		"Week income", "Week liters",
		"Month income", "Month liters",
		"Year income", "Year liters",
		"Lifetime income", "Lifetime liters"}
	if err := f.SetSheetRow(dashSheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	put := func(scope, name string, p dto.PeriodTotals) error {
		vals := []any{scope, name}
		for _, t := range []dto.Totals{p.Today, p.Week, p.Month, p.Year, p.Lifetime} {
			inc, _ := t.Income.Round(2).Float64()
			vol, _ := t.Volume.Round(3).Float64()
			vals = append(vals, inc, vol)
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(dashSheet, cell, &vals)
	}
	for _, fuel := range dash.Fuels {
		if err := put("fuel", fuel.Fuel, fuel.PeriodTotals); err != nil {
			return err
		}
	}
	for _, p := range dash.Pumps {
		if err := put("pump", fmt.Sprintf("%s (%s)", p.Label, p.Fuel), p.PeriodTotals); err != nil {
			return err
		}
	}
	if err := put("all", "All fuels", dash.All); err != nil {
		return err
	}

	txHeader := []any{"Date", "Shift", "Pump", "Fuel", "Bucket", "Liters", "Unit price", "Price"}
	if err := f.SetSheetRow(txSheet, "A1", &txHeader); err != nil {
		return err
	}
	for i, t := range txs {
		vol, _ := t.Volume.Float64()
		unit, _ := t.UnitPrice.Float64()
		price, _ := t.Price.Float64()
		vals := []any{t.Date, t.ShiftID, t.PumpID, t.Fuel, t.Bucket, vol, unit, price}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(txSheet, cell, &vals); err != nil {
			return err
		}
	}

	return f.Write(w)
}

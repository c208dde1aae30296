package service

import (
	"context"
	"fmt"
	"time"

	"fuelpos/internal/dto"
	"fuelpos/internal/model"
	"fuelpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionService interface {
	Submit(ctx context.Context, actor Actor, req dto.SubmitTransactionsRequest) (*dto.SubmitTransactionsResponse, error)
	List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
}

type transactionService struct {
	repo    repository.TransactionRepository
	shifts  ShiftService
	pricing PricingService
	now     func() time.Time
}

func NewTransactionService(repo repository.TransactionRepository, shifts ShiftService, pricing PricingService) TransactionService {
	return &transactionService{repo: repo, shifts: shifts, pricing: pricing, now: time.Now}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Submit ────────────────────────────────────────────────────────────────────
//   1. Require the operator's confirmation
//   2. Hold the open shift so it cannot end mid-submit
//   3. Price every entry server-side; one bad entry rejects the batch
//   4. BEGIN TX: insert one row per entry against the open shift; COMMIT

func (s *transactionService) Submit(ctx context.Context, actor Actor, req dto.SubmitTransactionsRequest) (*dto.SubmitTransactionsResponse, error) {
	if !req.Confirm {
		return nil, ErrNotConfirmed
	}
	if len(req.Entries) == 0 {
		return nil, ErrNoEntries
	}

	var resp *dto.SubmitTransactionsResponse
	err := s.shifts.WithOpenShift(ctx, func(shift *model.Shift) error {
		if shift.UserID != actor.ID && !actor.IsAdmin() {
			return ErrNotShiftOwner
		}

		quotes := make([]*Quote, len(req.Entries))
		for i, e := range req.Entries {
			q, err := s.pricing.ComputePrice(ctx, e.PumpID, e.Volume)
			if err != nil {
				return fmt.Errorf("entry %d (pump %d): %w", i+1, e.PumpID, err)
			}
			quotes[i] = q
		}

		now := s.now().UTC()
		rows := make([]model.Transaction, len(quotes))
		for i, q := range quotes {
			rows[i] = model.Transaction{
				ShiftID:   shift.ID,
				PumpID:    q.Pump.ID,
				Volume:    q.Volume,
				UnitPrice: q.UnitPrice,
				Price:     q.Total,
				Bucket:    q.Bucket,
				Date:      now,
			}
		}

		if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			for i := range rows {
				if err := s.repo.CreateTx(ctx, tx, &rows[i]); err != nil {
					return fmt.Errorf("record pump %d: %w", rows[i].PumpID, err)
				}
			}
			return nil
		}); err != nil {
			return err
		}

		total := decimal.Zero
		out := make([]dto.TransactionResponse, len(rows))
		for i := range rows {
			rows[i].Pump = quotes[i].Pump
			out[i] = transactionToResponse(&rows[i])
			total = total.Add(rows[i].Price)
		}
		resp = &dto.SubmitTransactionsResponse{ShiftID: shift.ID.String(), Transactions: out, Total: total}

		log.Info().
			Str("shift_id", shift.ID.String()).
			Str("user", actor.Username).
			Int("entries", len(rows)).
			Str("total", total.StringFixed(2)).
			Msg("transactions recorded")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ── List ──────────────────────────────────────────────────────────────────────

func (s *transactionService) List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	q, err := toTransactionQuery(filter)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	data := make([]dto.TransactionResponse, len(rows))
	for i := range rows {
		data[i] = transactionToResponse(&rows[i])
	}
	return &dto.TransactionListResponse{Data: data, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// toTransactionQuery converts the HTTP filter. Dates are local calendar days;
// To is inclusive.
func toTransactionQuery(f dto.TransactionFilter) (repository.TransactionQuery, error) {
	q := repository.TransactionQuery{PumpID: f.PumpID, Page: f.Page, Limit: f.Limit}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 200 {
		q.Limit = 50
	}
	if f.ShiftID != "" {
		id, err := uuid.Parse(f.ShiftID)
		if err != nil {
			return q, fmt.Errorf("%w: shift_id %q", ErrInvalidFilter, f.ShiftID)
		}
		q.ShiftID = &id
	}
	if f.From != "" {
		from, err := time.ParseInLocation("2006-01-02", f.From, time.Local)
		if err != nil {
			return q, fmt.Errorf("%w: from %q", ErrInvalidFilter, f.From)
		}
		from = from.UTC()
		q.From = &from
	}
	if f.To != "" {
		to, err := time.ParseInLocation("2006-01-02", f.To, time.Local)
		if err != nil {
			return q, fmt.Errorf("%w: to %q", ErrInvalidFilter, f.To)
		}
		to = to.AddDate(0, 0, 1).UTC()
		q.To = &to
	}
	if q.From != nil && q.To != nil && !q.From.Before(*q.To) {
		return q, fmt.Errorf("%w: from is after to", ErrInvalidFilter)
	}
	return q, nil
}

func transactionToResponse(t *model.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID.String(),
		ShiftID:   t.ShiftID.String(),
		PumpID:    t.PumpID,
		Fuel:      t.Pump.FuelType.Name,
		Bucket:    string(t.Bucket),
		Volume:    t.Volume,
		UnitPrice: t.UnitPrice,
		Price:     t.Price,
		Date:      t.Date.UTC().Format(time.RFC3339),
	}
}

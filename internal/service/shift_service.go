package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fuelpos/internal/dto"
	"fuelpos/internal/model"
	"fuelpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportSink receives the summary of every closed shift.
// worker.Dispatcher queues it in Redis; worker.InlineReporter renders it in place.
type ReportSink interface {
	EnqueueShiftReport(ctx context.Context, summary *dto.ShiftSummaryResponse) error
}

// ShiftService is the shift state machine. One instance owns the session of
// the running application: at most one shift is open at a time.
type ShiftService interface {
	Start(ctx context.Context, actor Actor) (*dto.ShiftResponse, error)
	End(ctx context.Context, actor Actor) (*dto.ShiftSummaryResponse, error)
	Status(ctx context.Context) *dto.ShiftStatusResponse
	// WithOpenShift runs fn with the open shift; the shift cannot be ended while fn runs.
	WithOpenShift(ctx context.Context, fn func(shift *model.Shift) error) error
	// CanShutdown returns ErrShiftOpen while a shift is open.
	CanShutdown() error
	// RecoverStale handles open shift rows found at startup. With autoClose every
	// row is closed; otherwise the newest is adopted and older ones are closed.
	RecoverStale(ctx context.Context, autoClose bool) (closed int, adopted *model.Shift, err error)
	ListStale(ctx context.Context) (*dto.StaleShiftsResponse, error)
	CloseStale(ctx context.Context) (int, error)
	List(ctx context.Context, page, limit int) (*dto.ShiftListResponse, error)
	Summary(ctx context.Context, id uuid.UUID) (*dto.ShiftSummaryResponse, error)
}

type shiftService struct {
	repo    repository.ShiftRepository
	txRepo  repository.TransactionRepository
	fuels   repository.FuelRepository
	reports ReportSink
	now     func() time.Time

	mu      sync.RWMutex
	current *model.Shift
}

func NewShiftService(
	repo repository.ShiftRepository,
	txRepo repository.TransactionRepository,
	fuels repository.FuelRepository,
	reports ReportSink,
	now func() time.Time,
) ShiftService {
	if now == nil {
		now = time.Now
	}
	return &shiftService{repo: repo, txRepo: txRepo, fuels: fuels, reports: reports, now: now}
}

// ── Start ─────────────────────────────────────────────────────────────────────

func (s *shiftService) Start(ctx context.Context, actor Actor) (*dto.ShiftResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return nil, ErrShiftAlreadyOpen
	}
	// A row may have been opened behind the session's back; adopt it instead of opening a second one.
	open, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	if len(open) > 0 {
		s.current = &open[0]
		return nil, ErrShiftAlreadyOpen
	}

	now := s.now()
	shift := &model.Shift{
		UserID:    actor.ID,
		Date:      now.Format("2006-01-02"),
		Type:      model.ShiftTypeAt(now),
		StartTime: now.UTC(),
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, err
	}
	s.current = shift

	log.Info().
		Str("shift_id", shift.ID.String()).
		Str("user", actor.Username).
		Str("type", shift.Type).
		Msg("shift started")

	resp := shiftToResponse(shift)
	resp.Username = actor.Username
	return &resp, nil
}

// ── End ───────────────────────────────────────────────────────────────────────

func (s *shiftService) End(ctx context.Context, actor Actor) (*dto.ShiftSummaryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoOpenShift
	}
	if s.current.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrNotShiftOwner
	}

	row := *s.current
	if err := s.closeRow(ctx, &row); err != nil {
		if errors.Is(err, ErrNoOpenShift) {
			// Closed elsewhere: the session was stale.
			s.current = nil
		}
		return nil, err
	}
	s.current = nil

	summary, err := s.Summary(ctx, row.ID)
	if err != nil {
		// The shift is closed; a missing summary must not undo that.
		log.Error().Err(err).Str("shift_id", row.ID.String()).Msg("shift summary failed")
		return &dto.ShiftSummaryResponse{Shift: shiftToResponse(&row)}, nil
	}
	s.emitReport(ctx, summary)
	return summary, nil
}

func (s *shiftService) closeRow(ctx context.Context, row *model.Shift) error {
	end := s.now().UTC()
	n, err := s.repo.Close(ctx, row.ID, end)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: shift %s already closed", ErrNoOpenShift, row.ID)
	}
	row.EndTime = &end
	log.Info().Str("shift_id", row.ID.String()).Time("end_time", end).Msg("shift ended")
	return nil
}

func (s *shiftService) emitReport(ctx context.Context, summary *dto.ShiftSummaryResponse) {
	if s.reports == nil {
		return
	}
	if err := s.reports.EnqueueShiftReport(ctx, summary); err != nil {
		log.Error().Err(err).Str("shift_id", summary.Shift.ID).Msg("shift report not queued")
	}
}

// ── Session ───────────────────────────────────────────────────────────────────

func (s *shiftService) Status(_ context.Context) *dto.ShiftStatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return &dto.ShiftStatusResponse{Open: false}
	}
	resp := shiftToResponse(s.current)
	return &dto.ShiftStatusResponse{Open: true, Shift: &resp}
}

func (s *shiftService) WithOpenShift(_ context.Context, fn func(shift *model.Shift) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ErrNoOpenShift
	}
	shift := *s.current
	return fn(&shift)
}

func (s *shiftService) CanShutdown() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current != nil {
		return ErrShiftOpen
	}
	return nil
}

// ── Stale shift recovery ──────────────────────────────────────────────────────

func (s *shiftService) RecoverStale(ctx context.Context, autoClose bool) (int, *model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	open, err := s.repo.ListOpen(ctx)
	if err != nil {
		return 0, nil, err
	}
	if len(open) == 0 {
		return 0, nil, nil
	}

	var adopted *model.Shift
	toClose := open
	if !autoClose {
		adopted = &open[0]
		toClose = open[1:]
	}

	closed := 0
	for i := range toClose {
		row := &toClose[i]
		if err := s.closeRow(ctx, row); err != nil {
			return closed, adopted, err
		}
		closed++
		log.Warn().Str("shift_id", row.ID.String()).Msg("stale shift closed")
		if summary, err := s.Summary(ctx, row.ID); err == nil {
			s.emitReport(ctx, summary)
		}
	}

	s.current = adopted
	if adopted != nil {
		log.Warn().
			Str("shift_id", adopted.ID.String()).
			Time("start_time", adopted.StartTime).
			Msg("open shift from a previous run adopted; end it to close it")
	}
	return closed, adopted, nil
}

func (s *shiftService) ListStale(ctx context.Context) (*dto.StaleShiftsResponse, error) {
	open, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ShiftResponse, len(open))
	for i := range open {
		data[i] = shiftToResponse(&open[i])
	}
	return &dto.StaleShiftsResponse{Data: data}, nil
}

// CloseStale force-closes every open shift row, including the session's.
func (s *shiftService) CloseStale(ctx context.Context) (int, error) {
	closed, _, err := s.RecoverStale(ctx, true)
	return closed, err
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *shiftService) List(ctx context.Context, page, limit int) (*dto.ShiftListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	shifts, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ShiftResponse, len(shifts))
	for i := range shifts {
		data[i] = shiftToResponse(&shifts[i])
	}
	return &dto.ShiftListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *shiftService) Summary(ctx context.Context, id uuid.UUID) (*dto.ShiftSummaryResponse, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, err
	}

	sums, err := s.txRepo.SumByPump(ctx, &id, nil)
	if err != nil {
		return nil, err
	}
	pumps, err := s.fuels.ListPumps(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Pump, len(pumps))
	for _, p := range pumps {
		byID[p.ID] = p
	}

	summary := &dto.ShiftSummaryResponse{
		Shift:  shiftToResponse(shift),
		Pumps:  make([]dto.PumpTotals, 0, len(sums)),
		Volume: decimal.Zero,
		Income: decimal.Zero,
	}
	for _, sum := range sums {
		p := byID[sum.PumpID]
		summary.Pumps = append(summary.Pumps, dto.PumpTotals{
			PumpID:       sum.PumpID,
			Label:        p.Label,
			Fuel:         p.FuelType.Name,
			Transactions: sum.TxCount,
			Volume:       sum.Volume,
			Income:       sum.Income,
		})
		summary.Volume = summary.Volume.Add(sum.Volume)
		summary.Income = summary.Income.Add(sum.Income)
	}
	return summary, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func shiftToResponse(s *model.Shift) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:        s.ID.String(),
		UserID:    s.UserID.String(),
		Username:  s.User.Username,
		Date:      s.Date,
		Type:      s.Type,
		StartTime: s.StartTime.UTC().Format(time.RFC3339),
		Open:      s.IsOpen(),
	}
	if s.EndTime != nil {
		t := s.EndTime.UTC().Format(time.RFC3339)
		resp.EndTime = &t
	}
	return resp
}

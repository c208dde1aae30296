package worker

// report_worker.go
// Processes shift_report jobs: renders the closed shift's summary as a PDF
// and, when a report address is configured, hands it to the email queue.

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"fuelpos/internal/dto"
	"fuelpos/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailEnqueuer accepts email jobs. Dispatcher queues them in Redis;
// directEmail sends them in place.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

// ShiftReportWorker turns a shift summary into a PDF report.
type ShiftReportWorker struct {
	station     string
	storagePath string
	reportEmail string
	email       EmailEnqueuer
}

// NewShiftReportWorker wires the report worker. An empty reportEmail or a nil
// email enqueuer disables mailing.
func NewShiftReportWorker(station, storagePath, reportEmail string, email EmailEnqueuer) *ShiftReportWorker {
	return &ShiftReportWorker{station: station, storagePath: storagePath, reportEmail: reportEmail, email: email}
}

func (w *ShiftReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var summary dto.ShiftSummaryResponse
	if err := json.Unmarshal(raw, &summary); err != nil {
		return fmt.Errorf("report_worker: invalid payload: %w", err)
	}

	pdfPath, err := infra.GenerateShiftReportPDF(w.station, &summary, w.storagePath)
	if err != nil {
		return fmt.Errorf("report_worker: pdf: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("shift_id", summary.Shift.ID).Msg("report_worker: PDF generated")

	if w.reportEmail == "" || w.email == nil {
		return nil
	}
	job := EmailJobPayload{
		ToEmail: w.reportEmail,
		Subject: fmt.Sprintf("%s: shift report %s %s", w.station, summary.Shift.Date, summary.Shift.Type),
		Body: fmt.Sprintf("Shift %s closed.\nLiters: %s\nIncome: %s\n",
			summary.Shift.ID, summary.Volume.StringFixed(3), summary.Income.StringFixed(2)),
		PDFPath: pdfPath,
	}
	// The PDF exists; a failed hand-off is logged rather than re-rendering it.
	if err := w.email.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("to", w.reportEmail).Msg("report_worker: failed to enqueue email")
	}
	return nil
}

// directEmail runs email jobs synchronously.
type directEmail struct{ worker *EmailWorker }

func (d directEmail) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return d.worker.Process(ctx, data)
}

// InlineReporter renders shift reports in a background goroutine of the
// server process. It is used when no Redis is configured.
type InlineReporter struct {
	report *ShiftReportWorker
	wg     sync.WaitGroup
}

// NewInlineReporter builds the Redis-less report pipeline. A nil mailer disables email.
func NewInlineReporter(station, storagePath, reportEmail string, mailer Sender) *InlineReporter {
	var email EmailEnqueuer
	if mailer != nil {
		email = directEmail{worker: NewEmailWorker(mailer)}
	}
	return &InlineReporter{report: NewShiftReportWorker(station, storagePath, reportEmail, email)}
}

// EnqueueShiftReport starts rendering and returns immediately. Errors are
// logged; they never reach the caller that closed the shift.
func (r *InlineReporter) EnqueueShiftReport(_ context.Context, summary *dto.ShiftSummaryResponse) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.report.Process(context.Background(), data); err != nil {
			log.Error().Err(err).Str("shift_id", summary.Shift.ID).Msg("inline shift report failed")
		}
	}()
	return nil
}

// Wait blocks until every started report finished.
func (r *InlineReporter) Wait() { r.wg.Wait() }

package worker

// email_worker.go
// Processes email jobs from QueueEmail: sends a shift report PDF to the
// station's report address via SMTP.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// Sender delivers one email with an optional attachment. infra.Mailer implements it.
type Sender interface {
	Send(to, subject, body, attachmentPath string) error
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer Sender
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer Sender) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends an email with the PDF report attached.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}
	if w.mailer == nil {
		return errors.New("email_worker: no mailer configured")
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Str("pdf", payload.PDFPath).Msg("email_worker: report sent")
	return nil
}

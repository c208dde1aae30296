package infra

import (
	"fmt"
	"net/smtp"

	"fuelpos/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending shift reports.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	cb       *CircuitBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		cb:       NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Breaker exposes the mailer's circuit breaker for health reporting.
func (m *Mailer) Breaker() *CircuitBreaker { return m.cb }

// Send delivers one message, optionally with a file attached.
// Calls fail fast with ErrCircuitOpen while the SMTP server keeps failing.
func (m *Mailer) Send(to, subject, body, attachmentPath string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if attachmentPath != "" {
		if _, err := e.AttachFile(attachmentPath); err != nil {
			return fmt.Errorf("mailer: attach file: %w", err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return m.cb.Execute(func() error {
		return e.Send(m.addr, auth)
	})
}

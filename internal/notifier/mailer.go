package notifier

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/internal/repository"
	"github.com/swasth/triage-api/pkg/metrics"
)

// Dialer sends a composed message. Satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer is the SMTP-backed Notifier. Every attempt, successful or
// not, is written to the email audit log.
type Mailer struct {
	dialer  Dialer
	from    string
	logs    repository.EmailLogRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewMailer(cfg SMTPConfig, logs repository.EmailLogRepository, m *metrics.Metrics, logger zerolog.Logger) *Mailer {
	return &Mailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		logs:    logs,
		metrics: m,
		logger:  logger,
	}
}

// NewMailerWithDialer is used by tests to substitute the transport.
func NewMailerWithDialer(dialer Dialer, from string, logs repository.EmailLogRepository, m *metrics.Metrics, logger zerolog.Logger) *Mailer {
	return &Mailer{dialer: dialer, from: from, logs: logs, metrics: m, logger: logger}
}

func (n *Mailer) SendOTP(ctx context.Context, email string, msg OTPMessage) error {
	return n.send(ctx, email, KindOTP, msg)
}

func (n *Mailer) NotifyDoctor(ctx context.Context, doctorEmail string, assignment DoctorAssignment) error {
	return n.send(ctx, doctorEmail, KindDoctorAssignment, assignment)
}

func (n *Mailer) NotifyPatient(ctx context.Context, patientEmail string, confirmation PatientConfirmation) error {
	return n.send(ctx, patientEmail, KindPatientConfirmation, confirmation)
}

func (n *Mailer) NotifyAdminEmergency(ctx context.Context, adminEmail string, alert EmergencyAlert) error {
	return n.send(ctx, adminEmail, KindEmergencyAlert, alert)
}

func (n *Mailer) send(ctx context.Context, to string, kind Kind, payload interface{}) error {
	subject, body, err := render(kind, payload)
	if err != nil {
		n.record(ctx, to, string(kind), subject, err)
		return fmt.Errorf("failed to render notification: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		n.logger.Error().Err(err).Str("kind", string(kind)).Str("to", to).Msg("email delivery failed")
		n.record(ctx, to, string(kind), subject, err)
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	n.record(ctx, to, string(kind), subject, nil)
	return nil
}

// record appends to the email audit log. Log failures are themselves
// only logged; the audit trail must never break delivery.
func (n *Mailer) record(ctx context.Context, recipient, kind, subject string, sendErr error) {
	status := model.EmailStatusSent
	var errMsg *string
	if sendErr != nil {
		status = model.EmailStatusFailed
		s := sendErr.Error()
		errMsg = &s
	}

	if n.metrics != nil {
		n.metrics.EmailsSent.WithLabelValues(kind, string(status)).Inc()
	}

	if n.logs == nil {
		return
	}
	entry := &model.EmailLog{
		Recipient:    recipient,
		Subject:      subject,
		Kind:         kind,
		Status:       status,
		ErrorMessage: errMsg,
	}
	if err := n.logs.Create(ctx, entry); err != nil {
		n.logger.Error().Err(err).Str("kind", kind).Msg("failed to write email log")
	}
}

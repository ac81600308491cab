package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/swasth/triage-api/internal/model"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

type fakeEmailLogRepo struct {
	entries []*model.EmailLog
	err     error
}

func (f *fakeEmailLogRepo) Create(_ context.Context, log *model.EmailLog) error {
	f.entries = append(f.entries, log)
	return f.err
}

func (f *fakeEmailLogRepo) ListRecent(_ context.Context, _ int) ([]*model.EmailLog, error) {
	return f.entries, nil
}

func newTestMailer(dialer *fakeDialer, logs *fakeEmailLogRepo) *Mailer {
	return NewMailerWithDialer(dialer, "no-reply@swasth.local", logs, nil, zerolog.Nop())
}

func TestMailerSendsAndLogsSuccess(t *testing.T) {
	dialer := &fakeDialer{}
	logs := &fakeEmailLogRepo{}
	m := newTestMailer(dialer, logs)

	err := m.SendOTP(context.Background(), "asha@example.com", OTPMessage{
		Code:     "123456",
		UserType: model.UserTypePatient,
	})
	require.NoError(t, err)

	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []string{"asha@example.com"}, dialer.sent[0].GetHeader("To"))
	assert.Equal(t, []string{subjectOTP}, dialer.sent[0].GetHeader("Subject"))

	require.Len(t, logs.entries, 1)
	assert.Equal(t, model.EmailStatusSent, logs.entries[0].Status)
	assert.Equal(t, string(KindOTP), logs.entries[0].Kind)
	assert.Equal(t, "asha@example.com", logs.entries[0].Recipient)
}

func TestMailerLogsDeliveryFailure(t *testing.T) {
	dialer := &fakeDialer{err: errors.New("smtp unreachable")}
	logs := &fakeEmailLogRepo{}
	m := newTestMailer(dialer, logs)

	err := m.NotifyDoctor(context.Background(), "meera@example.com", DoctorAssignment{
		RequestID:   7,
		PatientName: "Asha Verma",
		Symptoms:    "migraine",
	})
	require.Error(t, err)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, model.EmailStatusFailed, logs.entries[0].Status)
	require.NotNil(t, logs.entries[0].ErrorMessage)
	assert.Contains(t, *logs.entries[0].ErrorMessage, "smtp unreachable")
}

func TestMailerAuditFailureDoesNotBreakDelivery(t *testing.T) {
	dialer := &fakeDialer{}
	logs := &fakeEmailLogRepo{err: errors.New("db down")}
	m := newTestMailer(dialer, logs)

	err := m.NotifyPatient(context.Background(), "asha@example.com", PatientConfirmation{
		PatientName: "Asha Verma",
		DoctorName:  "Dr. Meera Joshi",
		Date:        "Tuesday, September 1, 2026",
		Time:        "02:30 PM",
	})

	assert.NoError(t, err)
	assert.Len(t, dialer.sent, 1)
}

func TestRenderRejectsMismatchedPayload(t *testing.T) {
	_, _, err := render(KindOTP, DoctorAssignment{})
	assert.Error(t, err)

	_, _, err = render(Kind("newsletter"), OTPMessage{})
	assert.Error(t, err)
}

func TestRenderDoctorAssignment(t *testing.T) {
	subject, body, err := render(KindDoctorAssignment, DoctorAssignment{
		RequestID:     42,
		PatientName:   "Asha Verma",
		PatientEmail:  "asha@example.com",
		PatientPhone:  "+91-9000000001",
		Symptoms:      "recurring migraine",
		Duration:      "2 days",
		Severity:      5,
		SeverityLevel: model.SeverityMedium,
		RedFlags:      true,
		ConfirmURL:    "http://localhost:8080/api/v1/appointments/confirm/42",
		DeclineURL:    "http://localhost:8080/api/v1/appointments/decline/42",
	})

	require.NoError(t, err)
	assert.Equal(t, subjectDoctorAssignment, subject)
	assert.Contains(t, body, "Asha Verma")
	assert.Contains(t, body, "appointments/confirm/42")
	assert.Contains(t, body, "appointments/decline/42")
	assert.Contains(t, body, "Warning Signs Reported")
}

func TestRenderEmergencyAlert(t *testing.T) {
	subject, body, err := render(KindEmergencyAlert, EmergencyAlert{
		PatientName:   "Asha Verma",
		Symptoms:      "severe bleeding",
		Severity:      9,
		SeverityLevel: model.SeverityEmergency,
	})

	require.NoError(t, err)
	assert.Equal(t, subjectEmergencyAlert, subject)
	assert.Contains(t, body, "EMERGENCY CASE ALERT")
	assert.Contains(t, body, "severe bleeding")
	assert.Contains(t, body, "9/10")
}

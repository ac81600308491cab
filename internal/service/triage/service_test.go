package triage

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/internal/notifier"
	"github.com/swasth/triage-api/internal/triage"
	apperrors "github.com/swasth/triage-api/pkg/errors"
)

type fakePatientRepo struct {
	patients map[int64]*model.Patient
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	p.ID = int64(len(f.patients) + 1)
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return p, nil
}

func (f *fakePatientRepo) GetByEmail(_ context.Context, email string) (*model.Patient, error) {
	for _, p := range f.patients {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("patient", nil)
}

func (f *fakePatientRepo) TouchLastLogin(_ context.Context, _ int64) error { return nil }
func (f *fakePatientRepo) List(_ context.Context) ([]*model.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) Count(_ context.Context) (int64, error) { return 0, nil }

type fakeDoctorRepo struct {
	doctors map[int64]*model.Doctor
}

func (f *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	d.ID = int64(len(f.doctors) + 1)
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeDoctorRepo) Get(_ context.Context, id int64) (*model.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return d, nil
}

func (f *fakeDoctorRepo) GetByEmail(_ context.Context, _ string) (*model.Doctor, error) {
	return nil, apperrors.NotFound("doctor", nil)
}

func (f *fakeDoctorRepo) FindAvailableBySpecialty(_ context.Context, specialty model.Specialty) (*model.Doctor, error) {
	for _, d := range f.doctors {
		if d.Specialty == specialty && d.Eligible() {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) UpdateStatus(_ context.Context, _ int64, _ model.DoctorStatus, _ *int64) error {
	return nil
}
func (f *fakeDoctorRepo) UpdateAvailability(_ context.Context, _ int64, _ model.DoctorAvailability) error {
	return nil
}
func (f *fakeDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) { return nil, nil }
func (f *fakeDoctorRepo) CountByStatus(_ context.Context, _ model.DoctorStatus) (int64, error) {
	return 0, nil
}

type fakeRequestRepo struct {
	requests     map[int64]*model.PatientRequest
	assignDenied bool
}

func (f *fakeRequestRepo) Create(_ context.Context, r *model.PatientRequest) error {
	r.ID = int64(len(f.requests) + 1)
	r.Status = model.RequestStatusPendingAnalysis
	stored := *r
	f.requests[r.ID] = &stored
	return nil
}

func (f *fakeRequestRepo) Get(_ context.Context, id int64) (*model.PatientRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, apperrors.NotFound("request", nil)
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRequestRepo) SaveClassification(_ context.Context, id int64, result model.ClassificationResult) error {
	r := f.requests[id]
	r.Analysis = &result.Analysis
	r.SuggestedSpecialty = &result.SuggestedSpecialty
	r.SeverityLevel = &result.SeverityLevel
	r.Status = model.RequestStatusAnalyzed
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id int64, status model.RequestStatus) error {
	f.requests[id].Status = status
	return nil
}

func (f *fakeRequestRepo) AssignDoctor(_ context.Context, id, doctorID int64) error {
	if f.assignDenied {
		return apperrors.Conflict("doctor is no longer available", nil)
	}
	r := f.requests[id]
	r.AssignedDoctorID = &doctorID
	r.Status = model.RequestStatusDoctorAssigned
	return nil
}

func (f *fakeRequestRepo) ListByPatient(_ context.Context, _ int64) ([]*model.RequestDetail, error) {
	return nil, nil
}
func (f *fakeRequestRepo) ListAll(_ context.Context) ([]*model.RequestDetail, error) {
	return nil, nil
}
func (f *fakeRequestRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (f *fakeRequestRepo) CountByStatuses(_ context.Context, _ ...model.RequestStatus) (int64, error) {
	return 0, nil
}
func (f *fakeRequestRepo) CountEmergencies(_ context.Context) (int64, error) { return 0, nil }

type fakeAppointmentRepo struct {
	appointments []*model.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	a.ID = int64(len(f.appointments) + 1)
	f.appointments = append(f.appointments, a)
	return nil
}

func (f *fakeAppointmentRepo) GetByRequest(_ context.Context, _ int64) (*model.Appointment, error) {
	return nil, apperrors.NotFound("appointment", nil)
}
func (f *fakeAppointmentRepo) ListAll(_ context.Context) ([]*model.AppointmentDetail, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) CountByStatus(_ context.Context, _ model.AppointmentStatus) (int64, error) {
	return 0, nil
}

type fakeAdminRepo struct {
	admin *model.Admin
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, _ string) (*model.Admin, error) {
	return f.admin, nil
}
func (f *fakeAdminRepo) First(_ context.Context) (*model.Admin, error) {
	if f.admin == nil {
		return nil, apperrors.NotFound("admin", nil)
	}
	return f.admin, nil
}

type fakeNotifier struct {
	otps            []string
	doctorNotices   []notifier.DoctorAssignment
	patientNotices  []notifier.PatientConfirmation
	emergencyAlerts []notifier.EmergencyAlert
	fail            bool
}

func (f *fakeNotifier) SendOTP(_ context.Context, _ string, msg notifier.OTPMessage) error {
	f.otps = append(f.otps, msg.Code)
	return nil
}

func (f *fakeNotifier) NotifyDoctor(_ context.Context, _ string, a notifier.DoctorAssignment) error {
	f.doctorNotices = append(f.doctorNotices, a)
	if f.fail {
		return assert.AnError
	}
	return nil
}

func (f *fakeNotifier) NotifyPatient(_ context.Context, _ string, c notifier.PatientConfirmation) error {
	f.patientNotices = append(f.patientNotices, c)
	if f.fail {
		return assert.AnError
	}
	return nil
}

func (f *fakeNotifier) NotifyAdminEmergency(_ context.Context, _ string, a notifier.EmergencyAlert) error {
	f.emergencyAlerts = append(f.emergencyAlerts, a)
	if f.fail {
		return assert.AnError
	}
	return nil
}

type fixture struct {
	svc          *Service
	patients     *fakePatientRepo
	doctors      *fakeDoctorRepo
	requests     *fakeRequestRepo
	appointments *fakeAppointmentRepo
	notifier     *fakeNotifier
}

func newFixture() *fixture {
	patients := &fakePatientRepo{patients: map[int64]*model.Patient{
		1: {ID: 1, FullName: "Asha Verma", Phone: "+91-9000000001", Email: "asha@example.com"},
	}}
	doctors := &fakeDoctorRepo{doctors: map[int64]*model.Doctor{}}
	requests := &fakeRequestRepo{requests: map[int64]*model.PatientRequest{}}
	appointments := &fakeAppointmentRepo{}
	admins := &fakeAdminRepo{admin: &model.Admin{ID: 1, Email: "admin@example.com"}}
	n := &fakeNotifier{}

	svc := NewService(
		triage.NewRuleClassifier(),
		requests,
		doctors,
		patients,
		appointments,
		admins,
		n,
		"http://localhost:8080",
		nil,
		zerolog.Nop(),
	)

	return &fixture{
		svc:          svc,
		patients:     patients,
		doctors:      doctors,
		requests:     requests,
		appointments: appointments,
		notifier:     n,
	}
}

func (f *fixture) addEligibleDoctor(specialty model.Specialty) *model.Doctor {
	d := &model.Doctor{
		Name:         "Dr. Meera Joshi",
		Email:        "meera@example.com",
		Specialty:    specialty,
		Status:       model.DoctorStatusActive,
		Availability: model.DoctorAvailable,
	}
	_ = f.doctors.Create(context.Background(), d)
	return d
}

func boolPtr(b bool) *bool { return &b }

func submission(symptoms string, severity int) *model.SubmitRequestRequest {
	return &model.SubmitRequestRequest{
		PatientID: 1,
		Symptoms:  symptoms,
		Duration:  "2 days",
		Severity:  severity,
		RedFlags:  boolPtr(false),
		Consent:   boolPtr(true),
	}
}

func TestProcessRequestRequiresConsent(t *testing.T) {
	f := newFixture()

	sub := submission("mild headache", 3)
	sub.Consent = boolPtr(false)

	_, err := f.svc.ProcessRequest(context.Background(), sub)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Empty(t, f.requests.requests, "nothing should be persisted without consent")
}

func TestProcessRequestEmergencyEscalation(t *testing.T) {
	f := newFixture()
	f.addEligibleDoctor(model.SpecialtyCardiologist)

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("crushing chest pain", 5))
	require.NoError(t, err)

	assert.True(t, outcome.Emergency)
	assert.Contains(t, outcome.Message, "108 or 112")

	stored := f.requests.requests[outcome.RequestID]
	assert.Equal(t, model.RequestStatusEmergency, stored.Status)
	assert.Nil(t, stored.AssignedDoctorID, "emergencies bypass assignment")
	assert.Len(t, f.notifier.emergencyAlerts, 1)
	assert.Empty(t, f.notifier.doctorNotices)
}

func TestProcessRequestAssignsDoctor(t *testing.T) {
	f := newFixture()
	doc := f.addEligibleDoctor(model.SpecialtyNeurologist)

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	assert.False(t, outcome.Emergency)
	require.NotNil(t, outcome.Doctor)
	assert.Equal(t, doc.Name, outcome.Doctor.Name)
	assert.Equal(t, model.SpecialtyNeurologist, outcome.Doctor.Specialty)

	stored := f.requests.requests[outcome.RequestID]
	assert.Equal(t, model.RequestStatusDoctorAssigned, stored.Status)
	require.NotNil(t, stored.AssignedDoctorID)
	assert.Equal(t, doc.ID, *stored.AssignedDoctorID)

	require.Len(t, f.notifier.doctorNotices, 1)
	notice := f.notifier.doctorNotices[0]
	assert.Equal(t, outcome.RequestID, notice.RequestID)
	assert.Contains(t, notice.ConfirmURL, "/api/v1/appointments/confirm/")
	assert.Contains(t, notice.DeclineURL, "/api/v1/appointments/decline/")
}

func TestProcessRequestNoDoctorAvailable(t *testing.T) {
	f := newFixture()
	// Only a cardiologist exists; the neurology request finds nobody.
	f.addEligibleDoctor(model.SpecialtyCardiologist)

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	assert.False(t, outcome.Emergency)
	assert.Nil(t, outcome.Doctor)
	assert.Contains(t, outcome.Message, "No available doctors")

	stored := f.requests.requests[outcome.RequestID]
	assert.Equal(t, model.RequestStatusAnalyzed, stored.Status)
	assert.Empty(t, f.notifier.doctorNotices)
}

func TestProcessRequestIneligibleDoctorsNotMatched(t *testing.T) {
	f := newFixture()
	doc := f.addEligibleDoctor(model.SpecialtyNeurologist)
	doc.Availability = model.DoctorUnavailable

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	assert.Nil(t, outcome.Doctor)
	assert.Equal(t, model.RequestStatusAnalyzed, f.requests.requests[outcome.RequestID].Status)
}

func TestProcessRequestLostRaceIsNoDoctorOutcome(t *testing.T) {
	f := newFixture()
	f.addEligibleDoctor(model.SpecialtyNeurologist)
	f.requests.assignDenied = true

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	assert.Nil(t, outcome.Doctor)
	assert.Contains(t, outcome.Message, "No available doctors")
	assert.Equal(t, model.RequestStatusAnalyzed, f.requests.requests[outcome.RequestID].Status)
}

func TestProcessRequestNotificationFailureDoesNotAbort(t *testing.T) {
	f := newFixture()
	f.addEligibleDoctor(model.SpecialtyNeurologist)
	f.notifier.fail = true

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	require.NotNil(t, outcome.Doctor)
	assert.Equal(t, model.RequestStatusDoctorAssigned, f.requests.requests[outcome.RequestID].Status)
}

func TestConfirmWithScheduleCreatesSingleAppointment(t *testing.T) {
	f := newFixture()
	f.addEligibleDoctor(model.SpecialtyNeurologist)

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	appt, err := f.svc.ConfirmWithSchedule(context.Background(), outcome.RequestID, "2026-09-01", "14:30")
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusConfirmed, appt.Status)
	assert.NotNil(t, appt.ConfirmedAt)
	assert.Len(t, f.appointments.appointments, 1)
	assert.Equal(t, model.RequestStatusConfirmed, f.requests.requests[outcome.RequestID].Status)

	require.Len(t, f.notifier.patientNotices, 1)
	notice := f.notifier.patientNotices[0]
	assert.Equal(t, "Tuesday, September 1, 2026", notice.Date)
	assert.Equal(t, "02:30 PM", notice.Time)
}

func TestConfirmWithScheduleRejectsBadInput(t *testing.T) {
	f := newFixture()
	f.addEligibleDoctor(model.SpecialtyNeurologist)

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	_, err = f.svc.ConfirmWithSchedule(context.Background(), outcome.RequestID, "01-09-2026", "14:30")
	require.Error(t, err)

	_, err = f.svc.ConfirmWithSchedule(context.Background(), outcome.RequestID, "2026-09-01", "2pm")
	require.Error(t, err)

	assert.Empty(t, f.appointments.appointments)
}

func TestConfirmWithScheduleRejectsUnassignedRequest(t *testing.T) {
	f := newFixture()
	// No doctors at all, so the request stays ANALYZED.
	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	_, err = f.svc.ConfirmWithSchedule(context.Background(), outcome.RequestID, "2026-09-01", "14:30")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestDeclineCancelsWithoutAppointment(t *testing.T) {
	f := newFixture()
	f.addEligibleDoctor(model.SpecialtyNeurologist)

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	require.NoError(t, f.svc.Decline(context.Background(), outcome.RequestID))

	assert.Equal(t, model.RequestStatusCancelled, f.requests.requests[outcome.RequestID].Status)
	assert.Empty(t, f.appointments.appointments)
}

func TestTerminalStatesRejectConfirmAndDecline(t *testing.T) {
	f := newFixture()
	f.addEligibleDoctor(model.SpecialtyNeurologist)

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("recurring migraine", 5))
	require.NoError(t, err)

	_, err = f.svc.ConfirmWithSchedule(context.Background(), outcome.RequestID, "2026-09-01", "14:30")
	require.NoError(t, err)

	// Second confirm and a late decline both hit a terminal status.
	_, err = f.svc.ConfirmWithSchedule(context.Background(), outcome.RequestID, "2026-09-02", "10:00")
	require.Error(t, err)

	err = f.svc.Decline(context.Background(), outcome.RequestID)
	require.Error(t, err)

	assert.Len(t, f.appointments.appointments, 1)
}

func TestEmergencyWithoutAdminStillEscalates(t *testing.T) {
	f := newFixture()
	f.svc.admins = &fakeAdminRepo{}

	outcome, err := f.svc.ProcessRequest(context.Background(), submission("severe bleeding from wound", 5))
	require.NoError(t, err)

	assert.True(t, outcome.Emergency)
	assert.Equal(t, model.RequestStatusEmergency, f.requests.requests[outcome.RequestID].Status)
	assert.Empty(t, f.notifier.emergencyAlerts)
}

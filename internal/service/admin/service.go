package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/internal/repository"
)

const (
	statsCacheKey = "dashboard_stats"
	statsCacheTTL = 30 * time.Second
)

// DashboardStats is the admin overview counters.
type DashboardStats struct {
	TotalPatients         int64 `json:"total_patients"`
	TotalDoctors          int64 `json:"total_doctors"`
	PendingDoctors        int64 `json:"pending_doctors"`
	TotalRequests         int64 `json:"total_requests"`
	PendingRequests       int64 `json:"pending_requests"`
	ConfirmedAppointments int64 `json:"confirmed_appointments"`
	EmergencyCases        int64 `json:"emergency_cases"`
}

// Service backs the admin dashboard. Stats are cached briefly since
// the dashboard polls them.
type Service struct {
	patients     repository.PatientRepository
	doctors      repository.DoctorRepository
	requests     repository.RequestRepository
	appointments repository.AppointmentRepository
	emailLogs    repository.EmailLogRepository
	cache        *cache.Cache
}

func NewService(
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	requests repository.RequestRepository,
	appointments repository.AppointmentRepository,
	emailLogs repository.EmailLogRepository,
) *Service {
	return &Service{
		patients:     patients,
		doctors:      doctors,
		requests:     requests,
		appointments: appointments,
		emailLogs:    emailLogs,
		cache:        cache.New(statsCacheTTL, time.Minute),
	}
}

func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	if cached, ok := s.cache.Get(statsCacheKey); ok {
		return cached.(*DashboardStats), nil
	}

	stats := &DashboardStats{}

	var err error
	if stats.TotalPatients, err = s.patients.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	if stats.TotalDoctors, err = s.doctors.CountByStatus(ctx, model.DoctorStatusActive); err != nil {
		return nil, fmt.Errorf("failed to count doctors: %w", err)
	}
	if stats.PendingDoctors, err = s.doctors.CountByStatus(ctx, model.DoctorStatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending doctors: %w", err)
	}
	if stats.TotalRequests, err = s.requests.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	if stats.PendingRequests, err = s.requests.CountByStatuses(ctx,
		model.RequestStatusPendingAnalysis, model.RequestStatusAnalyzed, model.RequestStatusDoctorAssigned,
	); err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}
	if stats.ConfirmedAppointments, err = s.appointments.CountByStatus(ctx, model.AppointmentStatusConfirmed); err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	if stats.EmergencyCases, err = s.requests.CountEmergencies(ctx); err != nil {
		return nil, fmt.Errorf("failed to count emergencies: %w", err)
	}

	s.cache.Set(statsCacheKey, stats, cache.DefaultExpiration)
	return stats, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	return s.patients.List(ctx)
}

func (s *Service) ListRequests(ctx context.Context) ([]*model.RequestDetail, error) {
	return s.requests.ListAll(ctx)
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.AppointmentDetail, error) {
	return s.appointments.ListAll(ctx)
}

func (s *Service) RecentEmailLogs(ctx context.Context, limit int) ([]*model.EmailLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.emailLogs.ListRecent(ctx, limit)
}

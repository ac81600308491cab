package doctor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/internal/repository"
	apperrors "github.com/swasth/triage-api/pkg/errors"
)

// Service covers the doctor lifecycle: admins approve or block,
// doctors flip their own availability.
type Service struct {
	doctors repository.DoctorRepository
	logger  zerolog.Logger
}

func NewService(doctors repository.DoctorRepository, logger zerolog.Logger) *Service {
	return &Service{doctors: doctors, logger: logger}
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.doctors.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	return s.doctors.List(ctx)
}

// Approve activates a pending or blocked doctor and records who did it.
func (s *Service) Approve(ctx context.Context, id, approvedBy int64) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor.Status == model.DoctorStatusActive {
		return nil, apperrors.Conflict("doctor is already active", nil)
	}

	if err := s.doctors.UpdateStatus(ctx, id, model.DoctorStatusActive, &approvedBy); err != nil {
		return nil, fmt.Errorf("failed to approve doctor: %w", err)
	}

	s.logger.Info().Int64("doctor_id", id).Int64("approved_by", approvedBy).Msg("doctor approved")
	return s.doctors.Get(ctx, id)
}

// Block removes a doctor from matching entirely.
func (s *Service) Block(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor.Status == model.DoctorStatusBlocked {
		return nil, apperrors.Conflict("doctor is already blocked", nil)
	}

	if err := s.doctors.UpdateStatus(ctx, id, model.DoctorStatusBlocked, nil); err != nil {
		return nil, fmt.Errorf("failed to block doctor: %w", err)
	}

	s.logger.Info().Int64("doctor_id", id).Msg("doctor blocked")
	return s.doctors.Get(ctx, id)
}

// UpdateAvailability is self-service; blocked doctors cannot make
// themselves matchable.
func (s *Service) UpdateAvailability(ctx context.Context, id int64, availability model.DoctorAvailability) (*model.Doctor, error) {
	doctor, err := s.doctors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor.Status == model.DoctorStatusBlocked {
		return nil, apperrors.Forbidden("your account has been blocked, please contact admin", nil)
	}

	if err := s.doctors.UpdateAvailability(ctx, id, availability); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	return s.doctors.Get(ctx, id)
}

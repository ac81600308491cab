package patient

import (
	"context"

	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/internal/repository"
)

type Service struct {
	patients repository.PatientRepository
	requests repository.RequestRepository
}

func NewService(patients repository.PatientRepository, requests repository.RequestRepository) *Service {
	return &Service{patients: patients, requests: requests}
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	return s.patients.Get(ctx, id)
}

// RequestHistory returns the patient's requests with joined doctor and
// appointment details, newest first.
func (s *Service) RequestHistory(ctx context.Context, patientID int64) ([]*model.RequestDetail, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.requests.ListByPatient(ctx, patientID)
}

package doctor

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasth/triage-api/internal/model"
	apperrors "github.com/swasth/triage-api/pkg/errors"
)

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
	copied := *d
	return &copied, nil
}

func (f *fakeDoctorRepo) GetByEmail(_ context.Context, _ string) (*model.Doctor, error) {
	return nil, apperrors.NotFound("doctor", nil)
}

func (f *fakeDoctorRepo) FindAvailableBySpecialty(_ context.Context, _ model.Specialty) (*model.Doctor, error) {
	return nil, nil
}

func (f *fakeDoctorRepo) UpdateStatus(_ context.Context, id int64, status model.DoctorStatus, approvedBy *int64) error {
	d := f.doctors[id]
	d.Status = status
	d.ApprovedBy = approvedBy
	return nil
}

func (f *fakeDoctorRepo) UpdateAvailability(_ context.Context, id int64, availability model.DoctorAvailability) error {
	f.doctors[id].Availability = availability
	return nil
}

func (f *fakeDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) { return nil, nil }
func (f *fakeDoctorRepo) CountByStatus(_ context.Context, _ model.DoctorStatus) (int64, error) {
	return 0, nil
}

func newTestService() (*Service, *fakeDoctorRepo) {
	repo := &fakeDoctorRepo{doctors: map[int64]*model.Doctor{}}
	return NewService(repo, zerolog.Nop()), repo
}

func addDoctor(repo *fakeDoctorRepo, status model.DoctorStatus) *model.Doctor {
	d := &model.Doctor{
		Name:         "Dr. Meera Joshi",
		Email:        "meera@example.com",
		Specialty:    model.SpecialtyNeurologist,
		Status:       status,
		Availability: model.DoctorAvailable,
	}
	_ = repo.Create(context.Background(), d)
	return d
}

func TestApprovePendingDoctor(t *testing.T) {
	svc, repo := newTestService()
	d := addDoctor(repo, model.DoctorStatusPending)

	approved, err := svc.Approve(context.Background(), d.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, model.DoctorStatusActive, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, int64(1), *approved.ApprovedBy)
}

func TestApproveActiveDoctorConflicts(t *testing.T) {
	svc, repo := newTestService()
	d := addDoctor(repo, model.DoctorStatusActive)

	_, err := svc.Approve(context.Background(), d.ID, 1)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestBlockDoctor(t *testing.T) {
	svc, repo := newTestService()
	d := addDoctor(repo, model.DoctorStatusActive)

	blocked, err := svc.Block(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DoctorStatusBlocked, blocked.Status)

	_, err = svc.Block(context.Background(), d.ID)
	assert.Error(t, err)
}

func TestBlockedDoctorCannotChangeAvailability(t *testing.T) {
	svc, repo := newTestService()
	d := addDoctor(repo, model.DoctorStatusBlocked)

	_, err := svc.UpdateAvailability(context.Background(), d.ID, model.DoctorAvailable)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestUpdateAvailability(t *testing.T) {
	svc, repo := newTestService()
	d := addDoctor(repo, model.DoctorStatusActive)

	updated, err := svc.UpdateAvailability(context.Background(), d.ID, model.DoctorUnavailable)
	require.NoError(t, err)
	assert.Equal(t, model.DoctorUnavailable, updated.Availability)
}

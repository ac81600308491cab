package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/swasth/triage-api/internal/model"
	"github.com/swasth/triage-api/internal/notifier"
	"github.com/swasth/triage-api/internal/repository"
	"github.com/swasth/triage-api/pkg/auth"
	apperrors "github.com/swasth/triage-api/pkg/errors"
	"github.com/swasth/triage-api/pkg/security"
)

const otpTTL = 10 * time.Minute

// Service handles OTP login for patients and doctors and password
// login for admins. OTPs live in Redis with a TTL and are consumed on
// first use.
type Service struct {
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	admins   repository.AdminRepository
	redis    *redis.Client
	notifier notifier.Notifier
	jwt      auth.JWTService
	hasher   security.PasswordHasher
	logger   zerolog.Logger
}

func NewService(
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	admins repository.AdminRepository,
	redisClient *redis.Client,
	n notifier.Notifier,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
	logger zerolog.Logger,
) *Service {
	return &Service{
		patients: patients,
		doctors:  doctors,
		admins:   admins,
		redis:    redisClient,
		notifier: n,
		jwt:      jwtSvc,
		hasher:   hasher,
		logger:   logger,
	}
}

func otpKey(userType model.UserType, email string) string {
	return fmt.Sprintf("otp:%s:%s", userType, email)
}

// SendOTP generates a 6-digit code, stores it with a 10-minute TTL
// and mails it.
func (s *Service) SendOTP(ctx context.Context, req *model.SendOTPRequest) error {
	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	if err := s.redis.Set(ctx, otpKey(req.Type, req.Email), code, otpTTL).Err(); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.notifier.SendOTP(ctx, req.Email, notifier.OTPMessage{
		Code:     code,
		UserType: req.Type,
	}); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	return nil
}

// VerifyOTP consumes the stored code and logs the user in,
// registering patients and doctors on first contact.
func (s *Service) VerifyOTP(ctx context.Context, req *model.VerifyOTPRequest) (*model.TokenResponse, error) {
	key := otpKey(req.Type, req.Email)
	stored, err := s.redis.GetDel(ctx, key).Result()
	if err == redis.Nil || stored != req.OTP {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid or expired OTP"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read OTP: %w", err)
	}

	switch req.Type {
	case model.UserTypePatient:
		return s.loginPatient(ctx, req)
	case model.UserTypeDoctor:
		return s.loginDoctor(ctx, req)
	default:
		return nil, apperrors.BadRequest("unsupported user type", nil)
	}
}

func (s *Service) loginPatient(ctx context.Context, req *model.VerifyOTPRequest) (*model.TokenResponse, error) {
	patient, err := s.patients.GetByEmail(ctx, req.Email)
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrNotFound {
		patient = &model.Patient{
			FullName: req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
		}
		if err := s.patients.Create(ctx, patient); err != nil {
			return nil, fmt.Errorf("failed to register patient: %w", err)
		}
	} else if err != nil {
		return nil, err
	} else if err := s.patients.TouchLastLogin(ctx, patient.ID); err != nil {
		s.logger.Warn().Err(err).Int64("patient_id", patient.ID).Msg("failed to update last login")
	}

	token, err := s.jwt.Generate(patient.ID, patient.Email, string(model.UserTypePatient))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.TokenResponse{
		Token: token,
		User: &model.AuthUser{
			ID:    patient.ID,
			Name:  patient.FullName,
			Email: patient.Email,
			Phone: patient.Phone,
			Type:  model.UserTypePatient,
		},
	}, nil
}

func (s *Service) loginDoctor(ctx context.Context, req *model.VerifyOTPRequest) (*model.TokenResponse, error) {
	doctor, err := s.doctors.GetByEmail(ctx, req.Email)
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrNotFound {
		specialty := model.Specialty(req.Specialty)
		if !specialty.Valid() {
			specialty = model.SpecialtyGeneralPhysician
		}
		// Self-registration always lands pending; only an admin
		// activates a doctor.
		doctor = &model.Doctor{
			Name:      req.Name,
			Phone:     req.Phone,
			Email:     req.Email,
			Specialty: specialty,
			Status:    model.DoctorStatusPending,
		}
		if err := s.doctors.Create(ctx, doctor); err != nil {
			return nil, fmt.Errorf("failed to register doctor: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	switch doctor.Status {
	case model.DoctorStatusBlocked:
		return nil, apperrors.Forbidden("your account has been blocked, please contact admin", nil)
	case model.DoctorStatusPending:
		return &model.TokenResponse{
			Pending: true,
			Message: "Your account is pending admin approval. You will be notified once approved.",
		}, nil
	}

	token, err := s.jwt.Generate(doctor.ID, doctor.Email, string(model.UserTypeDoctor))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.TokenResponse{
		Token: token,
		User: &model.AuthUser{
			ID:        doctor.ID,
			Name:      doctor.Name,
			Email:     doctor.Email,
			Phone:     doctor.Phone,
			Type:      model.UserTypeDoctor,
			Specialty: &doctor.Specialty,
			Status:    string(doctor.Status),
		},
	}, nil
}

// AdminLogin checks the bcrypt password hash and issues a token.
func (s *Service) AdminLogin(ctx context.Context, req *model.AdminLoginRequest) (*model.TokenResponse, error) {
	admin, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	if err := s.hasher.Compare(admin.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	token, err := s.jwt.Generate(admin.ID, admin.Email, string(model.UserTypeAdmin))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.TokenResponse{
		Token: token,
		User: &model.AuthUser{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
			Type:  model.UserTypeAdmin,
		},
	}, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

package service

import (
	"context"
	"time"

	authdomain "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	authdto "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/dto"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"go.uber.org/zap"
)

type DoctorService struct {
	users UserCreator
	repo  domain.DoctorRepository
	log   *zap.Logger
}

func NewDoctorService(users UserCreator, repo domain.DoctorRepository, log *zap.Logger) *DoctorService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DoctorService{users: users, repo: repo, log: log}
}

// List returns active doctors ordered by name.
func (s *DoctorService) List(ctx context.Context) ([]domain.Doctor, error) {
	return s.repo.List(ctx)
}

// Get hides deactivated doctors.
func (s *DoctorService) Get(ctx context.Context, id string) (*domain.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, autherror.ErrDoctorNotFound
	}
	return doctor, nil
}

func (s *DoctorService) Create(ctx context.Context, input authdto.RegisterInput) (*domain.Doctor, error) {
	user, err := s.users.CreateUser(ctx, input, authdomain.RoleDoctor)
	if err != nil {
		return nil, err
	}
	s.log.Info("doctor created", zap.String("doctor_id", user.ID))
	return s.Get(ctx, user.ID)
}

func (s *DoctorService) Update(ctx context.Context, id string, input dto.DoctorUpdateInput) (*domain.Doctor, error) {
	input.FullName = trimmed(input.FullName)
	if err := validateFullName(input.FullName); err != nil {
		return nil, err
	}
	if input.ExperienceYears != nil && *input.ExperienceYears < 0 {
		return nil, autherror.Validation("experience_years cannot be negative")
	}

	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.Apply(domain.DoctorUpdate{
		FullName:        input.FullName,
		PhoneNumber:     input.PhoneNumber,
		Specialization:  input.Specialization,
		LicenseNumber:   input.LicenseNumber,
		ExperienceYears: input.ExperienceYears,
	})
	doctor.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

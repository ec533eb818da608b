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

type PatientService struct {
	users UserCreator
	repo  domain.PatientRepository
	log   *zap.Logger
}

func NewPatientService(users UserCreator, repo domain.PatientRepository, log *zap.Logger) *PatientService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PatientService{users: users, repo: repo, log: log}
}

// Create registers a patient account on behalf of the caller.
func (s *PatientService) Create(ctx context.Context, input authdto.RegisterInput) (*domain.Patient, error) {
	user, err := s.users.CreateUser(ctx, input, authdomain.RolePatient)
	if err != nil {
		return nil, err
	}
	s.log.Info("patient created", zap.String("patient_id", user.ID))
	return s.Get(ctx, user.ID)
}

func (s *PatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, autherror.ErrPatientNotFound
	}
	return patient, nil
}

func (s *PatientService) Update(ctx context.Context, id string, input dto.PatientUpdateInput) (*domain.Patient, error) {
	update, err := patientUpdate(input)
	if err != nil {
		return nil, err
	}

	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patient.Apply(update)
	patient.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func patientUpdate(input dto.PatientUpdateInput) (domain.PatientUpdate, error) {
	input.FullName = trimmed(input.FullName)
	if err := validateFullName(input.FullName); err != nil {
		return domain.PatientUpdate{}, err
	}
	if err := validateGender(input.Gender); err != nil {
		return domain.PatientUpdate{}, err
	}
	dob, err := parseDate(input.DOB)
	if err != nil {
		return domain.PatientUpdate{}, err
	}

	return domain.PatientUpdate{
		FullName:         input.FullName,
		PhoneNumber:      input.PhoneNumber,
		Gender:           input.Gender,
		DOB:              dob,
		MedicalHistory:   input.MedicalHistory,
		Allergies:        input.Allergies,
		EmergencyContact: input.EmergencyContact,
	}, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/dto"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"go.uber.org/zap"
)

type AvailabilityService struct {
	doctors domain.DoctorRepository
	repo    domain.AvailabilityRepository
	log     *zap.Logger
}

func NewAvailabilityService(doctors domain.DoctorRepository, repo domain.AvailabilityRepository, log *zap.Logger) *AvailabilityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AvailabilityService{doctors: doctors, repo: repo, log: log}
}

func (s *AvailabilityService) Get(ctx context.Context, doctorID string) ([]domain.Slot, error) {
	if err := s.requireDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListByDoctor(ctx, doctorID)
}

// Replace swaps the doctor's whole weekly template for the given slots.
// An empty list clears it.
func (s *AvailabilityService) Replace(ctx context.Context, doctorID string, input dto.AvailabilityInput) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0, len(input.Slots))
	for i, in := range input.Slots {
		if in.AvailableDay == "" {
			return nil, autherror.MissingField(fmt.Sprintf("slots[%d].available_day", i))
		}
		day, err := domain.ParseWeekday(in.AvailableDay)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.Slot{Day: day, StartTime: in.StartTime, EndTime: in.EndTime})
	}

	normalized, err := domain.NormalizeSlots(doctorID, slots)
	if err != nil {
		return nil, err
	}

	if err := s.requireDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, doctorID, normalized); err != nil {
		return nil, err
	}
	s.log.Info("availability replaced", zap.String("doctor_id", doctorID), zap.Int("slots", len(normalized)))

	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *AvailabilityService) requireDoctor(ctx context.Context, doctorID string) error {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil || !doctor.IsActive {
		return autherror.ErrDoctorNotFound
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/config"
	authdomain "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/dto"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService struct {
	appointments domain.AppointmentRepository
	patients     domain.PatientRepository
	doctors      domain.DoctorRepository
	availability domain.AvailabilityRepository
	cfg          *config.Config
	log          *zap.Logger
}

func NewBookingService(
	appointments domain.AppointmentRepository,
	patients domain.PatientRepository,
	doctors domain.DoctorRepository,
	availability domain.AvailabilityRepository,
	cfg *config.Config,
	log *zap.Logger,
) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
		availability: availability,
		cfg:          cfg,
		log:          log,
	}
}

// Create books a scheduled appointment. Patients can only book for themselves.
func (s *BookingService) Create(ctx context.Context, caller *authdomain.Principal, input dto.CreateAppointmentInput) (*domain.Appointment, error) {
	if caller.Role == authdomain.RolePatient {
		if input.PatientID == "" {
			input.PatientID = caller.UserID
		}
		if input.PatientID != caller.UserID {
			return nil, autherror.ErrForbidden
		}
	}

	switch {
	case input.PatientID == "":
		return nil, autherror.MissingField("patient_id")
	case input.DoctorID == "":
		return nil, autherror.MissingField("doctor_id")
	case input.AppointmentTime.IsZero():
		return nil, autherror.MissingField("appointment_time")
	}

	patient, err := s.patients.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, autherror.ErrPatientNotFound
	}

	doctor, err := s.doctors.GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, autherror.ErrDoctorNotFound
	}

	if s.cfg.EnforceAvailability {
		if err := s.checkSlot(ctx, input.DoctorID, input.AppointmentTime, ""); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	appointment := &domain.Appointment{
		ID:              uuid.New().String(),
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		AppointmentTime: input.AppointmentTime,
		Status:          domain.StatusScheduled,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.log.Info("appointment booked",
		zap.String("appointment_id", appointment.ID),
		zap.String("patient_id", appointment.PatientID),
		zap.String("doctor_id", appointment.DoctorID),
	)

	return s.reload(ctx, appointment)
}

// List applies the query filters. Patients only ever see their own appointments.
func (s *BookingService) List(ctx context.Context, caller *authdomain.Principal, query dto.AppointmentQuery) ([]domain.Appointment, error) {
	filter := domain.AppointmentFilter{
		PatientID:  query.PatientID,
		DoctorID:   query.DoctorID,
		ActiveOnly: query.ActiveOnly,
	}
	if query.Status != "" {
		status, ok := domain.ParseStatus(query.Status)
		if !ok {
			return nil, autherror.InvalidFormat("status must be one of scheduled, completed, cancelled")
		}
		filter.Status = status
	}
	if !caller.Role.SeesAllAppointments() {
		filter.PatientID = caller.UserID
	}

	return s.appointments.List(ctx, filter)
}

func (s *BookingService) Get(ctx context.Context, caller *authdomain.Principal, id string) (*domain.Appointment, error) {
	return s.load(ctx, caller, id)
}

// Update applies a partial update. Patients cannot mark an appointment completed.
func (s *BookingService) Update(ctx context.Context, caller *authdomain.Principal, id string, input dto.UpdateAppointmentInput) (*domain.Appointment, error) {
	update := domain.AppointmentUpdate{
		AppointmentTime:    input.AppointmentTime,
		Notes:              input.Notes,
		CancellationReason: input.CancellationReason,
	}
	if input.Status != nil {
		status, ok := domain.ParseStatus(*input.Status)
		if !ok {
			return nil, autherror.InvalidFormat("status must be one of scheduled, completed, cancelled")
		}
		if status == domain.StatusCompleted && caller.Role == authdomain.RolePatient {
			return nil, autherror.ErrForbidden
		}
		update.Status = &status
	}
	if input.AppointmentTime != nil && input.AppointmentTime.IsZero() {
		return nil, autherror.MissingField("appointment_time")
	}

	appointment, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	rescheduled := update.AppointmentTime != nil && !update.AppointmentTime.Equal(appointment.AppointmentTime)

	if err := appointment.Apply(update, time.Now()); err != nil {
		return nil, err
	}

	if rescheduled && s.cfg.EnforceAvailability && appointment.Status == domain.StatusScheduled {
		if err := s.checkSlot(ctx, appointment.DoctorID, appointment.AppointmentTime, appointment.ID); err != nil {
			return nil, err
		}
	}

	return s.save(ctx, appointment)
}

func (s *BookingService) Cancel(ctx context.Context, caller *authdomain.Principal, id string, reason *string) (*domain.Appointment, error) {
	appointment, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	cancelled := domain.StatusCancelled
	if err := appointment.Apply(domain.AppointmentUpdate{Status: &cancelled, CancellationReason: reason}, time.Now()); err != nil {
		return nil, err
	}

	s.log.Info("appointment cancelled", zap.String("appointment_id", id), zap.String("by", caller.UserID))
	return s.save(ctx, appointment)
}

func (s *BookingService) Complete(ctx context.Context, caller *authdomain.Principal, id string) (*domain.Appointment, error) {
	appointment, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	completed := domain.StatusCompleted
	if err := appointment.Apply(domain.AppointmentUpdate{Status: &completed}, time.Now()); err != nil {
		return nil, err
	}

	return s.save(ctx, appointment)
}

// Delete removes the row for good. Cancel is the normal way to drop a booking.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Warn("appointment deleted", zap.String("appointment_id", id))
	return nil
}

func (s *BookingService) load(ctx context.Context, caller *authdomain.Principal, id string) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, autherror.ErrAppointmentNotFound
	}
	if !caller.Role.SeesAllAppointments() && appointment.PatientID != caller.UserID {
		return nil, autherror.ErrForbidden
	}
	return appointment, nil
}

func (s *BookingService) save(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return s.reload(ctx, appointment)
}

// reload reads the row back so the names from the joined users are present.
func (s *BookingService) reload(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	stored, err := s.appointments.GetByID(ctx, appointment.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return appointment, nil
	}
	return stored, nil
}

// checkSlot requires the time to fall inside one of the doctor's weekly slots
// and not to collide with another live appointment of that doctor.
func (s *BookingService) checkSlot(ctx context.Context, doctorID string, at time.Time, excludeID string) error {
	slots, err := s.availability.ListByDoctor(ctx, doctorID)
	if err != nil {
		return err
	}

	covered := false
	for _, slot := range slots {
		if slot.Covers(at) {
			covered = true
			break
		}
	}
	if !covered {
		return autherror.ErrSlotUnavailable
	}

	taken, err := s.appointments.ExistsAt(ctx, doctorID, at, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return autherror.ErrSlotTaken
	}
	return nil
}

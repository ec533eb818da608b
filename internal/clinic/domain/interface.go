package domain

//go:generate mockgen -destination=../../mocks/mock_clinic_repositories.go -package=mocks github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain PatientRepository,DoctorRepository,AvailabilityRepository,AppointmentRepository

import (
	"context"
	"time"
)

// Lookups return nil, nil when the row does not exist.

type PatientRepository interface {
	GetByID(ctx context.Context, userID string) (*Patient, error)
	Update(ctx context.Context, patient *Patient) error
}

type DoctorRepository interface {
	List(ctx context.Context) ([]Doctor, error)
	GetByID(ctx context.Context, userID string) (*Doctor, error)
	Update(ctx context.Context, doctor *Doctor) error
}

type AvailabilityRepository interface {
	ListByDoctor(ctx context.Context, doctorID string) ([]Slot, error)
	Replace(ctx context.Context, doctorID string, slots []Slot) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]Appointment, error)
	Update(ctx context.Context, appointment *Appointment) error
	Delete(ctx context.Context, id string) error
	ExistsAt(ctx context.Context, doctorID string, at time.Time, excludeID string) (bool, error)
}

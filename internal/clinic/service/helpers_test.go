package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	authdomain "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
)

func ptr[T any](v T) *T { return &v }

var (
	admin   = &authdomain.Principal{UserID: "admin-1", Role: authdomain.RoleAdmin}
	doctor  = &authdomain.Principal{UserID: "doc-1", Role: authdomain.RoleDoctor}
	patient = &authdomain.Principal{UserID: "patient-1", Role: authdomain.RolePatient}
	other   = &authdomain.Principal{UserID: "patient-2", Role: authdomain.RolePatient}
)

// monday10 is a Monday, 10:00 UTC.
var monday10 = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

// memoryAppointments is an in-memory AppointmentRepository for workflow tests.
type memoryAppointments struct {
	mu   sync.Mutex
	rows map[string]domain.Appointment
}

func newMemoryAppointments() *memoryAppointments {
	return &memoryAppointments{rows: make(map[string]domain.Appointment)}
}

func (m *memoryAppointments) Create(_ context.Context, a *domain.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[a.ID] = *a
	return nil
}

func (m *memoryAppointments) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memoryAppointments) List(_ context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Appointment, 0)
	for _, a := range m.rows {
		if f.PatientID != "" && a.PatientID != f.PatientID {
			continue
		}
		if f.DoctorID != "" && a.DoctorID != f.DoctorID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.ActiveOnly && a.Status == domain.StatusCancelled {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentTime.After(out[j].AppointmentTime) })
	return out, nil
}

func (m *memoryAppointments) Update(_ context.Context, a *domain.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[a.ID]; !ok {
		return autherror.ErrAppointmentNotFound
	}
	m.rows[a.ID] = *a
	return nil
}

func (m *memoryAppointments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return autherror.ErrAppointmentNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryAppointments) ExistsAt(_ context.Context, doctorID string, at time.Time, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.DoctorID == doctorID && a.AppointmentTime.Equal(at) && a.Status != domain.StatusCancelled && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// memoryAvailability is an in-memory AvailabilityRepository.
type memoryAvailability struct {
	mu     sync.Mutex
	nextID int64
	slots  map[string][]domain.Slot
}

func newMemoryAvailability() *memoryAvailability {
	return &memoryAvailability{slots: make(map[string][]domain.Slot)}
}

func (m *memoryAvailability) ListByDoctor(_ context.Context, doctorID string) ([]domain.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Slot{}, m.slots[doctorID]...), nil
}

func (m *memoryAvailability) Replace(_ context.Context, doctorID string, slots []domain.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		m.nextID++
		s.ID = m.nextID
		s.DoctorID = doctorID
		stored = append(stored, s)
	}
	m.slots[doctorID] = stored
	return nil
}

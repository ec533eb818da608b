package domain

import (
	"time"

	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	switch st {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled:
		return true
	case StatusScheduled:
		return false
	default:
		return false
	}
}

// CanTransition reports whether moving from s to next is legal. Staying in
// scheduled is allowed; leaving a terminal state never is.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusScheduled:
		return next == StatusScheduled || next == StatusCompleted || next == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false
	default:
		return false
	}
}

type Appointment struct {
	ID                 string
	PatientID          string
	DoctorID           string
	PatientName        *string
	DoctorName         *string
	AppointmentTime    time.Time
	Status             Status
	Notes              *string
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AppointmentUpdate is a partial update. Nil fields are left as they are.
type AppointmentUpdate struct {
	AppointmentTime    *time.Time
	Status             *Status
	Notes              *string
	CancellationReason *string
}

// Apply changes the present fields. A status change must be a legal
// transition, and a terminal appointment cannot be rescheduled.
func (a *Appointment) Apply(u AppointmentUpdate, now time.Time) error {
	if u.Status != nil && !a.Status.CanTransition(*u.Status) {
		return autherror.ErrInvalidState
	}
	if u.AppointmentTime != nil && !u.AppointmentTime.Equal(a.AppointmentTime) && a.Status.Terminal() {
		return autherror.ErrInvalidState
	}

	if u.AppointmentTime != nil {
		a.AppointmentTime = *u.AppointmentTime
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Notes != nil {
		a.Notes = u.Notes
	}
	if u.CancellationReason != nil {
		a.CancellationReason = u.CancellationReason
	}
	a.UpdatedAt = now
	return nil
}

type AppointmentFilter struct {
	PatientID  string
	DoctorID   string
	Status     Status
	ActiveOnly bool
}

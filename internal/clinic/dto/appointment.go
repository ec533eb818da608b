package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
)

type CreateAppointmentInput struct {
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	Notes           *string   `json:"notes"`
}

// UpdateAppointmentInput is a partial update. Omitted fields are left unchanged.
type UpdateAppointmentInput struct {
	AppointmentTime    *time.Time `json:"appointment_time"`
	Status             *string    `json:"status"`
	Notes              *string    `json:"notes"`
	CancellationReason *string    `json:"cancellation_reason"`
}

type CancelAppointmentInput struct {
	Reason *string `json:"cancellation_reason"`
}

// AppointmentQuery is bound from the list endpoint's query string.
type AppointmentQuery struct {
	PatientID  string `query:"patient_id"`
	DoctorID   string `query:"doctor_id"`
	Status     string `query:"status"`
	ActiveOnly bool   `query:"active_only"`
}

type AppointmentOutput struct {
	ID                 string    `json:"id"`
	PatientID          string    `json:"patient_id"`
	DoctorID           string    `json:"doctor_id"`
	PatientName        *string   `json:"patient_name"`
	DoctorName         *string   `json:"doctor_name"`
	AppointmentTime    time.Time `json:"appointment_time"`
	Status             string    `json:"status"`
	Notes              *string   `json:"notes"`
	CancellationReason *string   `json:"cancellation_reason"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewAppointmentOutput(a *domain.Appointment) AppointmentOutput {
	return AppointmentOutput{
		ID:                 a.ID,
		PatientID:          a.PatientID,
		DoctorID:           a.DoctorID,
		PatientName:        a.PatientName,
		DoctorName:         a.DoctorName,
		AppointmentTime:    a.AppointmentTime,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func NewAppointmentOutputs(appointments []domain.Appointment) []AppointmentOutput {
	out := make([]AppointmentOutput, 0, len(appointments))
	for i := range appointments {
		out = append(out, NewAppointmentOutput(&appointments[i]))
	}
	return out
}

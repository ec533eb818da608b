package dto

import (
	"time"

	authdto "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
)

// PatientUpdateInput is a partial update. Omitted fields are left unchanged.
type PatientUpdateInput struct {
	FullName         *string `json:"full_name"`
	PhoneNumber      *string `json:"phone_number"`
	Gender           *string `json:"gender"`
	DOB              *string `json:"dob"`
	MedicalHistory   *string `json:"medical_history"`
	Allergies        *string `json:"allergies"`
	EmergencyContact *string `json:"emergency_contact"`
}

type PatientOutput struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	PhoneNumber      *string   `json:"phone_number,omitempty"`
	Gender           *string   `json:"gender,omitempty"`
	DOB              *string   `json:"dob,omitempty"`
	MedicalHistory   string    `json:"medical_history"`
	Allergies        string    `json:"allergies"`
	EmergencyContact string    `json:"emergency_contact"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewPatientOutput(p *domain.Patient) PatientOutput {
	out := PatientOutput{
		ID:               p.UserID,
		FullName:         p.FullName,
		Email:            p.Email,
		PhoneNumber:      p.PhoneNumber,
		Gender:           p.Gender,
		MedicalHistory:   p.MedicalHistory,
		Allergies:        p.Allergies,
		EmergencyContact: p.EmergencyContact,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.DOB != nil {
		dob := p.DOB.Format(authdto.DateLayout)
		out.DOB = &dob
	}
	return out
}

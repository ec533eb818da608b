package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
)

// DoctorUpdateInput is a partial update. Omitted fields are left unchanged.
type DoctorUpdateInput struct {
	FullName        *string `json:"full_name"`
	PhoneNumber     *string `json:"phone_number"`
	Specialization  *string `json:"specialization"`
	LicenseNumber   *string `json:"license_number"`
	ExperienceYears *int    `json:"experience_years"`
}

type DoctorOutput struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	PhoneNumber     *string   `json:"phone_number,omitempty"`
	Specialization  string    `json:"specialization"`
	LicenseNumber   string    `json:"license_number"`
	ExperienceYears int       `json:"experience_years"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewDoctorOutput(d *domain.Doctor) DoctorOutput {
	return DoctorOutput{
		ID:              d.UserID,
		FullName:        d.FullName,
		Email:           d.Email,
		PhoneNumber:     d.PhoneNumber,
		Specialization:  d.Specialization,
		LicenseNumber:   d.LicenseNumber,
		ExperienceYears: d.ExperienceYears,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func NewDoctorOutputs(doctors []domain.Doctor) []DoctorOutput {
	out := make([]DoctorOutput, 0, len(doctors))
	for i := range doctors {
		out = append(out, NewDoctorOutput(&doctors[i]))
	}
	return out
}

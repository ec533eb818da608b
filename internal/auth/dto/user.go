package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
)

type UserOutput struct {
	ID          string     `json:"id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	DOB         *string    `json:"dob,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewUserOutput(u *domain.User) UserOutput {
	out := UserOutput{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        u.Role.String(),
		PhoneNumber: u.PhoneNumber,
		Gender:      u.Gender,
		IsActive:    u.IsActive,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.DOB != nil {
		dob := u.DOB.Format(DateLayout)
		out.DOB = &dob
	}
	return out
}

// DateLayout is the wire format of date-only fields such as dob.
const DateLayout = "2006-01-02"

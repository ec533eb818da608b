package domain

import "time"

type User struct {
	ID                  string
	FullName            string
	Email               string
	PasswordHash        string
	PhoneNumber         *string
	Gender              *string
	DOB                 *time.Time
	Role                Role
	IsActive            bool
	RefreshToken        *string
	LastLogin           *time.Time
	FailedLoginAttempts int
	AccountLockedUntil  *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// LockedAt reports whether the account is locked at the given instant.
func (u *User) LockedAt(now time.Time) bool {
	return u.AccountLockedUntil != nil && u.AccountLockedUntil.After(now)
}

// ProfileDetails carries the role specific columns written together with the
// user row. Patient fields are ignored for doctors and vice versa.
type ProfileDetails struct {
	MedicalHistory   string
	Allergies        string
	EmergencyContact string
	Specialization   string
	LicenseNumber    string
	ExperienceYears  int
}

// Principal is the authenticated caller extracted from an access token.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p *Principal) IsAdmin() bool { return p.Role == RoleAdmin }

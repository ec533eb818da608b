package domain

import "strings"

// Role is the closed set of account roles. Adding a role means extending every
// switch over Role in this package.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	default:
		return false
	}
}

// SelfRegistrable reports whether the role may be chosen on public sign-up.
// Admin accounts are only created by the seed command.
func (r Role) SelfRegistrable() bool {
	switch r {
	case RolePatient, RoleDoctor:
		return true
	case RoleAdmin:
		return false
	default:
		return false
	}
}

// SeesAllAppointments reports whether the role can read any appointment
// without an ownership check.
func (r Role) SeesAllAppointments() bool {
	switch r {
	case RoleAdmin, RoleDoctor:
		return true
	case RolePatient:
		return false
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

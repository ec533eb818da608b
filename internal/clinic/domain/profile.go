package domain

import "time"

// Patient is the patient profile joined with its user row. UserID is the key.
type Patient struct {
	UserID           string
	FullName         string
	Email            string
	PhoneNumber      *string
	Gender           *string
	DOB              *time.Time
	MedicalHistory   string
	Allergies        string
	EmergencyContact string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PatientUpdate holds the fields a partial update may change. Nil means untouched.
type PatientUpdate struct {
	FullName         *string
	PhoneNumber      *string
	Gender           *string
	DOB              *time.Time
	MedicalHistory   *string
	Allergies        *string
	EmergencyContact *string
}

func (p *Patient) Apply(u PatientUpdate) {
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = u.PhoneNumber
	}
	if u.Gender != nil {
		p.Gender = u.Gender
	}
	if u.DOB != nil {
		p.DOB = u.DOB
	}
	if u.MedicalHistory != nil {
		p.MedicalHistory = *u.MedicalHistory
	}
	if u.Allergies != nil {
		p.Allergies = *u.Allergies
	}
	if u.EmergencyContact != nil {
		p.EmergencyContact = *u.EmergencyContact
	}
}

// Doctor is the doctor profile joined with its user row. UserID is the key.
type Doctor struct {
	UserID          string
	FullName        string
	Email           string
	PhoneNumber     *string
	Specialization  string
	LicenseNumber   string
	ExperienceYears int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type DoctorUpdate struct {
	FullName        *string
	PhoneNumber     *string
	Specialization  *string
	LicenseNumber   *string
	ExperienceYears *int
}

func (d *Doctor) Apply(u DoctorUpdate) {
	if u.FullName != nil {
		d.FullName = *u.FullName
	}
	if u.PhoneNumber != nil {
		d.PhoneNumber = u.PhoneNumber
	}
	if u.Specialization != nil {
		d.Specialization = *u.Specialization
	}
	if u.LicenseNumber != nil {
		d.LicenseNumber = *u.LicenseNumber
	}
	if u.ExperienceYears != nil {
		d.ExperienceYears = *u.ExperienceYears
	}
}

package dto

type RegisterInput struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	DOB         *string `json:"dob,omitempty"`

	MedicalHistory   string `json:"medical_history,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`

	Specialization  string `json:"specialization,omitempty"`
	LicenseNumber   string `json:"license_number,omitempty"`
	ExperienceYears int    `json:"experience_years,omitempty"`
}

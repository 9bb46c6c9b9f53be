package dto

type CreateDoctorRequest struct {
	HospitalID      string `json:"hospital_id" validate:"required"`
	Name            string `json:"name" validate:"required,min=2"`
	Specialization  string `json:"specialization" validate:"required"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0"`
	IsAvailable     *bool  `json:"is_available"`
}

type DoctorQuery struct {
	HospitalID  string
	IsAvailable *bool
}

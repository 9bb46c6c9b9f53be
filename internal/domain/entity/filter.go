package entity

// Domain-level list filters. Every field is an exact-match predicate and an
// empty value means "any". Used by the repository layer to avoid coupling with
// delivery DTOs.

type CompanyFilter struct {
	Industry string
}

type DoctorFilter struct {
	HospitalID  CompanyID
	IsAvailable *bool
}

type VacancyFilter struct {
	CompanyID CompanyID
	Status    VacancyStatus
}

type OrderFilter struct {
	CompanyID CompanyID
	UserEmail string
}

type AppointmentFilter struct {
	EntityID  CompanyID
	UserEmail string
	Date      string
	Status    AppointmentStatus
}

type FeedbackFilter struct {
	EntityID  CompanyID
	UserEmail string
}

type ConversationLogFilter struct {
	CompanyID CompanyID
	SessionID string
}

package repository

// Store is the Entity Store: one repository per entity, implemented once per
// persistence backend and selected by configuration.
type Store struct {
	Companies        CompanyRepository
	Doctors          DoctorRepository
	Vacancies        VacancyRepository
	Orders           OrderRepository
	Appointments     AppointmentRepository
	Feedback         FeedbackRepository
	Users            UserRepository
	ConversationLogs ConversationLogRepository
}

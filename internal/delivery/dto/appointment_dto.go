package dto

type CreateAppointmentRequest struct {
	EntityID   string         `json:"entity_id" validate:"required"`
	EntityName string         `json:"entity_name"`
	Type       string         `json:"type" validate:"required"`
	PersonName string         `json:"person_name"`
	Date       string         `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string         `json:"time" validate:"required,datetime=15:04"`
	UserEmail  string         `json:"user_email" validate:"omitempty,email"`
	UserInfo   map[string]any `json:"user_info"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

type AppointmentQuery struct {
	EntityID  string
	UserEmail string
	Date      string
	Status    string
}

type SlotsResponse struct {
	EntityID       string   `json:"entity_id"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
	BookedSlots    []string `json:"booked_slots"`
}

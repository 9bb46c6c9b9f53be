package dto

type CreateFeedbackRequest struct {
	EntityID   string `json:"entity_id" validate:"required"`
	EntityName string `json:"entity_name"`
	Rating     int    `json:"rating" validate:"gte=0,lte=5"`
	Comment    string `json:"comment"`
	Category   string `json:"category" validate:"omitempty,max=50"`
	UserEmail  string `json:"user_email" validate:"omitempty,email"`
}

type FeedbackQuery struct {
	EntityID  string
	UserEmail string
}

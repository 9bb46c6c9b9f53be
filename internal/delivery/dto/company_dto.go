package dto

type CreateCompanyRequest struct {
	ID             string         `json:"id" validate:"omitempty,max=64"`
	Name           string         `json:"name" validate:"required"`
	Industry       string         `json:"industry" validate:"omitempty,max=100"`
	Logo           string         `json:"logo"`
	ContextSummary string         `json:"context_summary"`
	NLPContext     string         `json:"nlp_context"`
	Email          string         `json:"email" validate:"omitempty,email"`
	Phone          string         `json:"phone"`
	Website        string         `json:"website" validate:"omitempty,url"`
	Address        string         `json:"address"`
	SocialMedia    map[string]any `json:"social_media"`
	Gender         string         `json:"gender" validate:"omitempty,oneof=female male"`
}

type CompanyQuery struct {
	Industry string
}

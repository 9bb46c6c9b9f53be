package dto

type SynthesizeRequest struct {
	Text      string `json:"text" validate:"required,max=5000"`
	CompanyID string `json:"company_id"`
	Voice     string `json:"voice"`
}

type TranscriptResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

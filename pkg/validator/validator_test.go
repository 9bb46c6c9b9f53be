package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Rating int    `json:"rating" validate:"gte=0,lte=5"`
	Status string `json:"status" validate:"omitempty,oneof=open closed"`
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleRequest{Email: "nope", Rating: 9, Status: "paused", Date: "03/02/2025"})
	require.Error(t, err)

	got := v.FormatValidationErrors(err)
	assert.Equal(t, map[string]string{
		"email":  "email must be a valid email address",
		"rating": "rating must be less than or equal to 5",
		"status": "status must be one of open closed",
		"date":   "date must match 2006-01-02",
	}, got)
}

func TestValidate_OK(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&sampleRequest{Email: "a@b.com", Rating: 4}))
	assert.Empty(t, v.FormatValidationErrors(nil))
}

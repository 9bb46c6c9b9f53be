package entity

import (
	"crypto/rand"
	"fmt"
	"strings"
	"unicode"

	"ai-calling-agent/internal/domain/apperr"
)

// Typed identifiers. References between entities are by id only; the store
// checks they are well formed but never that the referenced row exists.
type (
	CompanyID     string
	DoctorID      string
	VacancyID     string
	OrderID       string
	AppointmentID string
	FeedbackID    string
	UserID        string
	LogID         string
)

func (id CompanyID) String() string     { return string(id) }
func (id DoctorID) String() string      { return string(id) }
func (id VacancyID) String() string     { return string(id) }
func (id OrderID) String() string       { return string(id) }
func (id AppointmentID) String() string { return string(id) }
func (id FeedbackID) String() string    { return string(id) }
func (id UserID) String() string        { return string(id) }
func (id LogID) String() string         { return string(id) }

const maxIDLength = 64

// ValidateRef checks that a required reference is present and well formed.
func ValidateRef(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.MissingField(field)
	}
	return ValidateOptionalRef(field, id)
}

// ValidateOptionalRef accepts an empty reference but rejects malformed ones.
func ValidateOptionalRef(field, id string) error {
	if id == "" {
		return nil
	}
	if len(id) > maxIDLength {
		return apperr.Invalid(field, fmt.Sprintf("must be at most %d characters", maxIDLength))
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return apperr.Invalid(field, "must not contain whitespace")
		}
	}
	return nil
}

// NewOrderID generates a human readable order id: ORD-XXXXXX
func NewOrderID() OrderID {
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	return OrderID(fmt.Sprintf("ORD-%06X", randomBytes))
}

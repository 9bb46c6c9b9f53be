package entity

import (
	"strings"
	"time"

	"ai-calling-agent/internal/domain/apperr"
)

// User represents an end user of the product (signup/login).
type User struct {
	ID                UserID     `gorm:"type:varchar(64);primaryKey" bson:"_id" json:"id"`
	Email             string     `gorm:"type:varchar(255);uniqueIndex;not null" bson:"email" json:"email"`
	Password          string     `gorm:"type:text;not null" bson:"password" json:"-"`
	FullName          string     `gorm:"type:varchar(255)" bson:"full_name" json:"full_name"`
	Phone             string     `gorm:"type:varchar(50)" bson:"phone" json:"phone,omitempty"`
	PreferredLanguage string     `gorm:"type:varchar(16)" bson:"preferred_language" json:"preferred_language,omitempty"`
	Role              string     `gorm:"type:varchar(20);not null;default:'user'" bson:"role" json:"role"`
	LastLogin         *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ApplyDefaults() {
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.PreferredLanguage == "" {
		u.PreferredLanguage = "en"
	}
}

func (u *User) Validate() error {
	if u.Email == "" {
		return apperr.MissingField("email")
	}
	if u.Password == "" {
		return apperr.MissingField("password")
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return apperr.Invalid("role", "must be user or admin")
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail lower-cases and trims an email so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

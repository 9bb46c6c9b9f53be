package converter

import (
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO, dropping the
// password hash.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:                user.ID.String(),
		Email:             user.Email,
		FullName:          user.FullName,
		Phone:             user.Phone,
		PreferredLanguage: user.PreferredLanguage,
		Role:              user.Role,
		LastLogin:         user.LastLogin,
		CreatedAt:         user.CreatedAt,
	}
}

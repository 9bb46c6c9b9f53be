package entity

// Role names carried on User and in access token claims
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

package users

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	TierFree = "free"
	TierPlus = "plus"

	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// User is an account row. PasswordHash is empty for OAuth-only accounts.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PictureURL   string    `json:"pictureUrl"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Tier         string    `json:"tier"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is a known account role.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// ValidTier reports whether tier is a known billing tier.
func ValidTier(tier string) bool {
	return tier == TierFree || tier == TierPlus
}

// ValidStatus reports whether status is a known account status.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusSuspended
}

package dto

import (
	"time"

	"github.com/spec-kit/study-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Memo     *string `json:"memo,omitempty"`
}

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for profile changes.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	Memo     *string `json:"memo,omitempty"`
}

// PinLoginRequest payload for redeeming a pairing PIN.
type PinLoginRequest struct {
	Pin string `json:"pin"`
}

// AuthResponse standard response for token-issuing endpoints.
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// PinResponse carries a freshly issued pairing PIN.
type PinResponse struct {
	Pin       string    `json:"pin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Memo      *string   `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps the domain model.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Memo:      user.Memo,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UsersPageResponse is a paginated account listing.
type UsersPageResponse struct {
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	Users      []UserResponse `json:"users"`
}

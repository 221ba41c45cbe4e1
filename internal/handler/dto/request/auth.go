package request

import (
	"strings"

	"hotel-checkout/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// ToDomain lower-cases the email; accounts are stored that way and booking
// confirmations go to whatever casing the guest typed.
func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	return user.NewCredentials(strings.ToLower(strings.TrimSpace(r.Email)), r.Password)
}

// RefreshRequest is for API clients; browsers send the refresh cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

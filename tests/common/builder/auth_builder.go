//go:build unit || e2e

package builder

import (
	"hotel-checkout/internal/domain/user"
	reqdto "hotel-checkout/internal/handler/dto/request"
)

// AuthBuilder builds login requests for staff and customers.
type AuthBuilder struct {
	Email    string
	Password string
	Role     user.Role
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "customer@example.com",
		Password: "password123",
		Role:     user.RoleCustomer,
	}
}

func (a *AuthBuilder) With(mutate func(*AuthBuilder)) *AuthBuilder {
	mutate(a)
	return a
}

func (a *AuthBuilder) AsSupport() *AuthBuilder {
	return a.With(func(b *AuthBuilder) {
		b.Email = "support@example.com"
		b.Role = user.RoleSupport
	})
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a traveler account or a back-office operator.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	fullName     string
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash string, role Role, fullName string) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		fullName:     strings.TrimSpace(fullName),
		isActive:     true,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) FullName() string      { return u.fullName }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }

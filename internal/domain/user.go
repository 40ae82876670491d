package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a system account. Credential storage and authentication live
// outside this service; the core only needs identity and role.
type User struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	FullName   string    `json:"full_name" db:"full_name"`
	Role       UserRole  `json:"role" db:"role"`
	Email      string    `json:"email" db:"email"`
	Phone      *string   `json:"phone,omitempty" db:"phone"`
	Department *string   `json:"department,omitempty" db:"department"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// NewUser builds an active user with a fresh id.
func NewUser(username, fullName string, role UserRole, email, phone, department string) *User {
	u := &User{
		ID:        uuid.New(),
		Username:  username,
		FullName:  fullName,
		Role:      role,
		Email:     email,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if phone != "" {
		u.Phone = &phone
	}
	if department != "" {
		u.Department = &department
	}

	return u
}

type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3"`
	FullName   string `json:"full_name" validate:"required"`
	Role       string `json:"role" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package auth implements user identity: signup with emailed confirmation
codes and JWT token issuance.

# Architecture

This layer is the "Truth" of the system for identity. Entities defined here
have no external dependencies and encapsulate the business rules of account
enrollment.

There are no passwords. A user proves ownership of their email address by
echoing back a single-use confirmation code, then trades it for a JWT.
*/
package auth

import (
	"time"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the platform.
type User struct {
	ID          int64        `json:"-"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Bio         string       `json:"bio"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"-"` // Grants admin capability regardless of Role. Never exposed.
	IsActive    bool         `json:"-"` // Set once the first confirmation code is redeemed.
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}

// IsAdmin reports whether the user has admin capability (role or superuser).
func (u *User) IsAdmin() bool {
	return sec.IsAdmin(u.Role, u.IsSuperuser)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
	FieldRole             = "role"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
)

// # Field Constraints

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 150
	MaxBioLength      = 1000
)

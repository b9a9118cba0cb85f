// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package account implements account administration and self-service profiles.

The administrative surface (listing, creating, editing, deleting accounts)
is reserved for admin capability. The /users/me endpoints let any
authenticated user read and edit their own profile; role is read-only
there, so a user can never promote themselves.
*/
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/dberr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/validate"
	"github.com/polyakovaevgenia/api-yamdb/internal/users/auth"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

// # Service Layer

// Service orchestrates account administration use cases.
type Service struct {
	accountRepository Repository
	logger            *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(accountRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Administration

func (service *Service) List(context context.Context, search string, page pagination.Params) ([]*auth.User, int, error) {
	return service.accountRepository.List(context, search, page)
}

func (service *Service) Get(context context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

// CreateInput holds the data an admin supplies for a new account.
// Role defaults to "user" when empty.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

/*
Create enrolls an account on behalf of an administrator.

Description: Unlike self-service signup, admin-created accounts are active
immediately and skip email confirmation. The user can still request a
confirmation code later to obtain a token.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: Created entity
  - error: Conflict (if identity exists) or validation failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	v := &validate.Validator{}
	v.Required(auth.FieldUsername, input.Username).
		Username(auth.FieldUsername, input.Username).
		NotReserved(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.MaxEmailLength).
		MaxLen(auth.FieldFirstName, input.FirstName, auth.MaxNameLength).
		MaxLen(auth.FieldLastName, input.LastName, auth.MaxNameLength).
		MaxLen(auth.FieldBio, input.Bio, auth.MaxBioLength).
		OneOf(auth.FieldRole, input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	if err := v.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
		IsActive:  true,
	}
	if err := service.accountRepository.Create(context, user); err != nil {
		if dberr.UniqueConstraint(err) != "" {
			return nil, apperr.Conflict("Username or email is already registered")
		}
		return nil, err
	}

	service.logger.Info("account_created_by_admin",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// UpdateInput holds a partial account update. Nil fields are left untouched.
type UpdateInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

/*
Update applies a partial set of changes to an account, including its role.

Parameters:
  - context: context.Context
  - username: string (current username of the target account)
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: NotFound, Conflict, or validation failures
*/
func (service *Service) Update(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if input.Username != nil {
		v.Required(auth.FieldUsername, *input.Username).
			Username(auth.FieldUsername, *input.Username).
			NotReserved(auth.FieldUsername, *input.Username).
			MaxLen(auth.FieldUsername, *input.Username, auth.MaxUsernameLength)
	}
	if input.Email != nil {
		v.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.MaxEmailLength)
	}
	if input.FirstName != nil {
		v.MaxLen(auth.FieldFirstName, *input.FirstName, auth.MaxNameLength)
	}
	if input.LastName != nil {
		v.MaxLen(auth.FieldLastName, *input.LastName, auth.MaxNameLength)
	}
	if input.Bio != nil {
		v.MaxLen(auth.FieldBio, *input.Bio, auth.MaxBioLength)
	}
	if input.Role != nil {
		v.OneOf(auth.FieldRole, *input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		if dberr.UniqueConstraint(err) != "" {
			return nil, apperr.Conflict("Username or email is already registered")
		}
		return nil, err
	}

	service.logger.Info("account_updated",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

/*
Delete removes an account. Reviews and comments authored by the account are
removed by the database cascade.
*/
func (service *Service) Delete(context context.Context, username string) error {
	if err := service.accountRepository.DeleteByUsername(context, username); err != nil {
		return err
	}
	service.logger.Warn("account_deleted_by_admin", slog.String("username", username))
	return nil
}

// # Self Service

func (service *Service) GetMe(context context.Context, userID int64) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_me_failed: %w", err)
	}
	return user, nil
}

// UpdateMeInput is the self-service subset of [UpdateInput]. Role is
// deliberately absent: users cannot change their own role.
type UpdateMeInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
}

func (service *Service) UpdateMe(context context.Context, userID int64, input UpdateMeInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	updated, err := service.Update(context, user.Username, UpdateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.Int64("user_id", userID))
	return updated, nil
}

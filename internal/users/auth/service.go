// Copyright (c) 2026 YaMDb. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/mailer"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID int64, username string, role sec.UserRole, superuser bool, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token-exchange use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code generation,
// hashing, or redemption logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	codeRepository ConfirmationCodeRepository
	tokenProvider  TokenProvider
	mail           mailer.Mailer
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	codeRepo ConfirmationCodeRepository,
	tokenProv TokenProvider,
	mail mailer.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		codeRepository: codeRepo,
		tokenProvider:  tokenProv,
		mail:           mail,
		logger:         logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup enrolls a new member.

Description: Validates the identity pair, persists a new inactive account
when the username is free, and emails a single-use confirmation code.
Repeating the call with the exact same (username, email) pair is idempotent:
no duplicate account, no new code, no second email.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: The enrolled (or existing) account
  - error: Conflict (identity pair collides with another account) or
    validation failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	v := &validate.Validator{}
	v.Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		NotReserved(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Idempotent re-signup: the exact same pair echoes the existing account.
	// The previously issued code stays valid and no mail goes out.
	existing, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		if existing.Email != input.Email {
			return nil, apperr.Conflict("Username is already taken",
				apperr.FieldError{Field: FieldUsername, Message: "Username is already taken"})
		}
		return existing, nil
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered",
			apperr.FieldError{Field: FieldEmail, Message: "Email is already registered"})
	}

	user := &User{
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
		IsActive: false,
	}
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_signed_up",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	if err := service.issueConfirmationCode(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

// issueConfirmationCode generates a code, stores only its bcrypt hash, and
// emails the plain code. Delivery is fire-and-forget: a mailer failure is
// logged but never fails the signup.
func (service *Service) issueConfirmationCode(context context.Context, user *User) error {
	code, err := sec.GenerateSecureToken(ConfirmationCodeLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_code_failed: %w", err)
	}

	codeHash, err := sec.HashCode(code)
	if err != nil {
		return fmt.Errorf("auth_service_hash_code_failed: %w", err)
	}

	if err := service.codeRepository.Set(context, user.Username, codeHash, ConfirmationCodeTTL); err != nil {
		return fmt.Errorf("auth_service_save_code_failed: %w", err)
	}

	recipient := user.Email
	username := user.Username
	go func() {
		sendCtx, cancel := stdContextWithTimeout()
		defer cancel()

		body := fmt.Sprintf(confirmationBody, username, code)
		if err := service.mail.Send(sendCtx, recipient, confirmationSubject, body); err != nil {
			service.logger.Error("confirmation_email_failed",
				slog.String("username", username),
				slog.Any("error", err),
			)
		}
	}()

	return nil
}

// stdContextWithTimeout gives the async email send its own deadline,
// detached from the originating request.
func stdContextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// # Token Exchange Flow

// TokenInput holds the data for a confirmation-code exchange.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

/*
Token exchanges a confirmation code for a JWT access token.

Description: Looks up the account, verifies the code against its stored
hash, consumes the code, activates the account, and mints a signed token.

An unknown username is a 404; a missing, wrong, or already consumed code is
a 400, indistinguishable from one another so a caller cannot probe code
state.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - string: Signed JWT access token
  - error: NotFound, InvalidCode, or signing failures
*/
func (service *Service) Token(context context.Context, input TokenInput) (string, error) {
	v := &validate.Validator{}
	v.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := v.Err(); err != nil {
		return "", err
	}

	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		return "", apperr.NotFound("User")
	}

	codeHash, err := service.codeRepository.Get(context, user.Username)
	if err != nil {
		return "", apperr.InvalidCode()
	}

	if !sec.CheckCodeHash(input.ConfirmationCode, codeHash) {
		service.logger.Warn("confirmation_code_mismatch", slog.String("username", user.Username))
		return "", apperr.InvalidCode()
	}

	// Single use: consume before minting so a replayed exchange fails.
	if err := service.codeRepository.Delete(context, user.Username); err != nil {
		return "", fmt.Errorf("auth_service_consume_code_failed: %w", err)
	}

	if !user.IsActive {
		if err := service.userRepository.MarkActive(context, user.ID); err != nil {
			return "", fmt.Errorf("auth_service_activate_failed: %w", err)
		}
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, user.Role, user.IsSuperuser, AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.Info("access_token_issued",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return token, nil
}

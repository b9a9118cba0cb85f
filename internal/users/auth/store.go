// Copyright (c) 2026 YaMDb. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		MarkActive flags the account as activated after its first
		successful confirmation-code exchange.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	MarkActive(context context.Context, userID int64) error
}

// # Volatile Data Access

// ConfirmationCodeRepository defines the contract for storing single-use
// confirmation code hashes, keyed by username.
type ConfirmationCodeRepository interface {

	/*
		Set stores the bcrypt hash of a confirmation code for a username.
		A second Set for the same username replaces the previous code.

		Parameters:
		  - context: context.Context
		  - username: string
		  - codeHash: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, username, codeHash string, ttl time.Duration) error

	/*
		Get retrieves the stored code hash for a username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - string: The bcrypt hash
		  - error: apperr.NotFound when absent or expired
	*/
	Get(context context.Context, username string) (string, error)

	/*
		Delete removes the code after successful redemption.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, username string) error
}

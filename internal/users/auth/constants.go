// Copyright (c) 2026 YaMDb. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// The token is the only credential a user holds, so it is longer-lived
	// than a session token backed by a refresh mechanism.
	AccessTokenTTL = 24 * time.Hour

	// ConfirmationCodeTTL is the duration a confirmation code remains
	// redeemable. Long-lived (24 hours) as users might not check email
	// immediately.
	ConfirmationCodeTTL = 24 * time.Hour

	// ConfirmationCodeLength is the byte length of the random code before
	// hex encoding.
	ConfirmationCodeLength = 16
)

// # Email Templates

const (
	confirmationSubject = "YaMDb confirmation code"
	confirmationBody    = "Hello, %s!\n\nYour confirmation code is: %s\n\nExchange it for an access token at /api/v1/auth/token.\n"
)

// Copyright (c) 2026 YaMDb. All rights reserved.

package auth_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
	"github.com/polyakovaevgenia/api-yamdb/internal/users/auth"
)

// # Test Doubles

type fakeUserRepository struct {
	users  map[string]*auth.User // keyed by username
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (r *fakeUserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepository) MarkActive(_ context.Context, userID int64) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.IsActive = true
			return nil
		}
	}
	return apperr.NotFound("User")
}

type fakeCodeRepository struct {
	hashes map[string]string
}

func newFakeCodeRepository() *fakeCodeRepository {
	return &fakeCodeRepository{hashes: map[string]string{}}
}

func (r *fakeCodeRepository) Set(_ context.Context, username, codeHash string, _ time.Duration) error {
	r.hashes[username] = codeHash
	return nil
}

func (r *fakeCodeRepository) Get(_ context.Context, username string) (string, error) {
	hash, ok := r.hashes[username]
	if !ok {
		return "", apperr.NotFound("Confirmation code")
	}
	return hash, nil
}

func (r *fakeCodeRepository) Delete(_ context.Context, username string) error {
	delete(r.hashes, username)
	return nil
}

type fakeTokenProvider struct {
	lastRole      sec.UserRole
	lastSuperuser bool
}

func (p *fakeTokenProvider) GenerateAccessToken(userID int64, username string, role sec.UserRole, superuser bool, _ time.Duration) (string, error) {
	p.lastRole = role
	p.lastSuperuser = superuser
	return fmt.Sprintf("token-%d-%s", userID, username), nil
}

// nullMailer swallows outgoing mail. Guarded by a mutex because the
// service sends asynchronously.
type nullMailer struct {
	mu   sync.Mutex
	sent int
}

func (m *nullMailer) Send(_ context.Context, _, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent++
	return nil
}

func (m *nullMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeCodeRepository, *fakeTokenProvider) {
	users := newFakeUserRepository()
	codes := newFakeCodeRepository()
	tokens := &fakeTokenProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := auth.NewService(users, codes, tokens, &nullMailer{}, logger)
	return service, users, codes, tokens
}

// # Signup

/*
TestService_Signup_CreatesInactiveAccount verifies the happy path: a new
inactive account with the default role and a stored code hash.
*/
func TestService_Signup_CreatesInactiveAccount(t *testing.T) {
	service, users, codes, _ := newTestService()

	user, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "melissa",
		Email:    "melissa@example.com",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.IsActive)
	assert.Len(t, users.users, 1)

	// Only the bcrypt hash is stored, never the plain code
	hash, err := codes.Get(context.Background(), "melissa")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

/*
TestService_Signup_Idempotent verifies that repeating signup with the exact
same (username, email) pair succeeds without creating a duplicate account,
replacing the code, or sending a second email.
*/
func TestService_Signup_Idempotent(t *testing.T) {
	users := newFakeUserRepository()
	codes := newFakeCodeRepository()
	mail := &nullMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewService(users, codes, &fakeTokenProvider{}, mail, logger)

	input := auth.SignupInput{Username: "melissa", Email: "melissa@example.com"}

	first, err := service.Signup(context.Background(), input)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return mail.sentCount() == 1 },
		time.Second, 10*time.Millisecond)
	firstHash := codes.hashes["melissa"]

	second, err := service.Signup(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.users, 1)

	// The original code stays valid and no second email goes out
	assert.Equal(t, firstHash, codes.hashes["melissa"])
	assert.Equal(t, 1, mail.sentCount())
}

/*
TestService_Signup_Conflicts covers the two identity collision cases.
*/
func TestService_Signup_Conflicts(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "melissa",
		Email:    "melissa@example.com",
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		input     auth.SignupInput
		wantField string
	}{
		{
			"username_taken_different_email",
			auth.SignupInput{Username: "melissa", Email: "other@example.com"},
			auth.FieldUsername,
		},
		{
			"email_taken_different_username",
			auth.SignupInput{Username: "impostor", Email: "melissa@example.com"},
			auth.FieldEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "CONFLICT", ae.Code)

			// The response names the colliding field
			require.Len(t, ae.Details, 1)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
		})
	}
}

/*
TestService_Signup_Validation rejects bad identities before touching storage.
*/
func TestService_Signup_Validation(t *testing.T) {
	service, users, _, _ := newTestService()

	tests := []struct {
		name  string
		input auth.SignupInput
	}{
		{"reserved_username", auth.SignupInput{Username: "me", Email: "me@example.com"}},
		{"empty_username", auth.SignupInput{Username: "", Email: "x@example.com"}},
		{"bad_email", auth.SignupInput{Username: "melissa", Email: "not-an-email"}},
		{"bad_username_chars", auth.SignupInput{Username: "two words", Email: "x@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}

	assert.Empty(t, users.users)
}

// # Token Exchange

/*
TestService_Token_UnknownUser maps a missing account to 404 rather than 400,
so signup typos are distinguishable from code problems.
*/
func TestService_Token_UnknownUser(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Token(context.Background(), auth.TokenInput{
		Username:         "ghost",
		ConfirmationCode: "whatever",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Token_InvalidCode verifies that a missing code and a wrong code
produce the same indistinguishable error.
*/
func TestService_Token_InvalidCode(t *testing.T) {
	service, users, codes, _ := newTestService()

	require.NoError(t, users.Create(context.Background(), &auth.User{
		Username: "melissa",
		Email:    "melissa@example.com",
		Role:     sec.RoleUser,
	}))

	// No code stored at all
	_, err := service.Token(context.Background(), auth.TokenInput{
		Username:         "melissa",
		ConfirmationCode: "whatever",
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CONFIRMATION_CODE", ae.Code)

	// A code stored, but the wrong one presented
	hash, err := sec.HashCode("the-real-code")
	require.NoError(t, err)
	require.NoError(t, codes.Set(context.Background(), "melissa", hash, time.Hour))

	_, err = service.Token(context.Background(), auth.TokenInput{
		Username:         "melissa",
		ConfirmationCode: "a-guess",
	})
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CONFIRMATION_CODE", ae.Code)

	// The wrong guess must not consume the stored code
	_, err = codes.Get(context.Background(), "melissa")
	assert.NoError(t, err)
}

/*
TestService_Token_Success covers redemption: the token is minted, the code
is consumed, the account is activated, and a replay fails.
*/
func TestService_Token_Success(t *testing.T) {
	service, users, codes, tokens := newTestService()

	user := &auth.User{
		Username:    "melissa",
		Email:       "melissa@example.com",
		Role:        sec.RoleModerator,
		IsSuperuser: true,
	}
	require.NoError(t, users.Create(context.Background(), user))

	hash, err := sec.HashCode("the-real-code")
	require.NoError(t, err)
	require.NoError(t, codes.Set(context.Background(), "melissa", hash, time.Hour))

	input := auth.TokenInput{Username: "melissa", ConfirmationCode: "the-real-code"}
	token, err := service.Token(context.Background(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Claims carry role and superuser flag
	assert.Equal(t, sec.RoleModerator, tokens.lastRole)
	assert.True(t, tokens.lastSuperuser)

	// First redemption activates the account
	assert.True(t, user.IsActive)

	// The code is single-use
	_, err = service.Token(context.Background(), input)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CONFIRMATION_CODE", ae.Code)
}

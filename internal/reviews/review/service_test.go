// Copyright (c) 2026 YaMDb. All rights reserved.

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/title"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
	"github.com/polyakovaevgenia/api-yamdb/internal/reviews/review"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pointer"
)

// # Test Doubles

type fakeRepository struct {
	reviews map[int64]*review.Review
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{reviews: map[int64]*review.Review{}}
}

func (r *fakeRepository) ListByTitle(_ context.Context, titleID int64, _ pagination.Params) ([]*review.Review, int, error) {
	out := []*review.Review{}
	for _, rv := range r.reviews {
		if rv.TitleID == titleID {
			out = append(out, rv)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetByID(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	rv, ok := r.reviews[reviewID]
	if !ok || rv.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return rv, nil
}

func (r *fakeRepository) ExistsByAuthorAndTitle(_ context.Context, authorID, titleID int64) (bool, error) {
	for _, rv := range r.reviews {
		if rv.AuthorID == authorID && rv.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) Create(_ context.Context, rv *review.Review) error {
	r.nextID++
	rv.ID = r.nextID
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepository) Update(_ context.Context, rv *review.Review) error {
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, _, reviewID int64) error {
	delete(r.reviews, reviewID)
	return nil
}

type fakeTitles struct {
	known map[int64]bool
}

func (r *fakeTitles) Get(_ context.Context, id int64) (*title.Title, error) {
	if !r.known[id] {
		return nil, apperr.NotFound("Title")
	}
	return &title.Title{ID: id, Name: "Solaris", Year: 1972}, nil
}

const knownTitleID = int64(1)

func newTestService() (*review.Service, *fakeRepository) {
	repo := newFakeRepository()
	titles := &fakeTitles{known: map[int64]bool{knownTitleID: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return review.NewService(repo, titles, logger), repo
}

func actorUser(id int64) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Username: "user", Role: sec.RoleUser}
}

// # Create

/*
TestService_Create posts a review stamped with the actor's identity.
*/
func TestService_Create(t *testing.T) {
	service, _ := newTestService()
	actor := &sec.AuthClaims{UserID: 42, Username: "melissa", Role: sec.RoleUser}

	created, err := service.Create(context.Background(), actor, knownTitleID, review.CreateInput{
		Text:  "A slow burn worth every minute.",
		Score: 9,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(42), created.AuthorID)
	assert.Equal(t, "melissa", created.Author)
	assert.Equal(t, 9, created.Score)
}

/*
TestService_Create_Validation rejects empty text and out-of-range scores.
*/
func TestService_Create_Validation(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name  string
		input review.CreateInput
	}{
		{"empty_text", review.CreateInput{Text: "", Score: 5}},
		{"score_too_low", review.CreateInput{Text: "ok", Score: 0}},
		{"score_too_high", review.CreateInput{Text: "ok", Score: 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), actorUser(1), knownTitleID, tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_Create_UnknownTitle turns a phantom title into a 404.
*/
func TestService_Create_UnknownTitle(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), actorUser(1), 999, review.CreateInput{
		Text:  "ok",
		Score: 5,
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Create_Duplicate enforces one review per author per title.
*/
func TestService_Create_Duplicate(t *testing.T) {
	service, repo := newTestService()
	actor := actorUser(42)

	_, err := service.Create(context.Background(), actor, knownTitleID, review.CreateInput{
		Text:  "first impression",
		Score: 7,
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), actor, knownTitleID, review.CreateInput{
		Text:  "second thoughts",
		Score: 3,
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Len(t, repo.reviews, 1)

	// A different user may still review the same title
	_, err = service.Create(context.Background(), actorUser(7), knownTitleID, review.CreateInput{
		Text:  "another take",
		Score: 5,
	})
	assert.NoError(t, err)
}

// # Ownership Rule

/*
TestService_Update_Ownership verifies who may edit a review: the author,
moderators, and admins pass; everyone else gets a 403.
*/
func TestService_Update_Ownership(t *testing.T) {
	tests := []struct {
		name    string
		actor   *sec.AuthClaims
		allowed bool
	}{
		{"author", &sec.AuthClaims{UserID: 42, Role: sec.RoleUser}, true},
		{"stranger", &sec.AuthClaims{UserID: 7, Role: sec.RoleUser}, false},
		{"moderator", &sec.AuthClaims{UserID: 7, Role: sec.RoleModerator}, true},
		{"admin", &sec.AuthClaims{UserID: 7, Role: sec.RoleAdmin}, true},
		{"superuser", &sec.AuthClaims{UserID: 7, Role: sec.RoleUser, Superuser: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService()

			created, err := service.Create(context.Background(), actorUser(42), knownTitleID, review.CreateInput{
				Text:  "original",
				Score: 5,
			})
			require.NoError(t, err)

			updated, err := service.Update(context.Background(), tt.actor, knownTitleID, created.ID, review.UpdateInput{
				Text: pointer.To("edited"),
			})

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "edited", updated.Text)
			} else {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "FORBIDDEN", ae.Code)
			}
		})
	}
}

/*
TestService_Update_PartialFields verifies nil fields are untouched.
*/
func TestService_Update_PartialFields(t *testing.T) {
	service, _ := newTestService()
	actor := actorUser(42)

	created, err := service.Create(context.Background(), actor, knownTitleID, review.CreateInput{
		Text:  "original",
		Score: 5,
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), actor, knownTitleID, created.ID, review.UpdateInput{
		Score: pointer.To(8),
	})
	require.NoError(t, err)

	assert.Equal(t, "original", updated.Text)
	assert.Equal(t, 8, updated.Score)
}

/*
TestService_Delete_Ownership verifies the ownership rule on deletion.
*/
func TestService_Delete_Ownership(t *testing.T) {
	service, repo := newTestService()

	created, err := service.Create(context.Background(), actorUser(42), knownTitleID, review.CreateInput{
		Text:  "original",
		Score: 5,
	})
	require.NoError(t, err)

	err = service.Delete(context.Background(), actorUser(7), knownTitleID, created.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
	assert.Len(t, repo.reviews, 1)

	require.NoError(t, service.Delete(context.Background(), actorUser(42), knownTitleID, created.ID))
	assert.Empty(t, repo.reviews)
}

/*
TestService_List_UnknownTitle 404s before listing anything.
*/
func TestService_List_UnknownTitle(t *testing.T) {
	service, _ := newTestService()

	_, _, err := service.List(context.Background(), 999, pagination.Params{Page: 1, Limit: 20})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

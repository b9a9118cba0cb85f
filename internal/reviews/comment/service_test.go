// Copyright (c) 2026 YaMDb. All rights reserved.

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
	"github.com/polyakovaevgenia/api-yamdb/internal/reviews/comment"
	"github.com/polyakovaevgenia/api-yamdb/internal/reviews/review"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

type fakeRepository struct {
	comments map[int64]*comment.Comment
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: map[int64]*comment.Comment{}}
}

func (r *fakeRepository) ListByReview(_ context.Context, reviewID int64, _ pagination.Params) ([]*comment.Comment, int, error) {
	out := []*comment.Comment{}
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetByID(_ context.Context, reviewID, commentID int64) (*comment.Comment, error) {
	c, ok := r.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (r *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	r.nextID++
	c.ID = r.nextID
	r.comments[c.ID] = c
	return nil
}

func (r *fakeRepository) Update(_ context.Context, c *comment.Comment) error {
	r.comments[c.ID] = c
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, _, commentID int64) error {
	delete(r.comments, commentID)
	return nil
}

type fakeReviews struct {
	titleID  int64
	reviewID int64
}

func (r *fakeReviews) Get(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	if titleID != r.titleID || reviewID != r.reviewID {
		return nil, apperr.NotFound("Review")
	}
	return &review.Review{ID: reviewID, TitleID: titleID}, nil
}

const (
	knownTitleID  = int64(1)
	knownReviewID = int64(5)
)

func newTestService() (*comment.Service, *fakeRepository) {
	repo := newFakeRepository()
	reviews := &fakeReviews{titleID: knownTitleID, reviewID: knownReviewID}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return comment.NewService(repo, reviews, logger), repo
}

/*
TestService_Create posts a comment under an existing review. Unlike reviews,
the same user may comment any number of times.
*/
func TestService_Create(t *testing.T) {
	service, repo := newTestService()
	actor := &sec.AuthClaims{UserID: 42, Username: "melissa", Role: sec.RoleUser}

	first, err := service.Create(context.Background(), actor, knownTitleID, knownReviewID, "agreed")
	require.NoError(t, err)
	assert.Equal(t, "melissa", first.Author)

	_, err = service.Create(context.Background(), actor, knownTitleID, knownReviewID, "one more thought")
	require.NoError(t, err)
	assert.Len(t, repo.comments, 2)
}

/*
TestService_Create_MissingParent 404s when either nested ID is wrong.
*/
func TestService_Create_MissingParent(t *testing.T) {
	service, _ := newTestService()
	actor := &sec.AuthClaims{UserID: 42, Role: sec.RoleUser}

	tests := []struct {
		name     string
		titleID  int64
		reviewID int64
	}{
		{"unknown_title", 999, knownReviewID},
		{"unknown_review", knownTitleID, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), actor, tt.titleID, tt.reviewID, "hello")
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "NOT_FOUND", ae.Code)
		})
	}
}

/*
TestService_Create_EmptyText rejects blank comments.
*/
func TestService_Create_EmptyText(t *testing.T) {
	service, _ := newTestService()
	actor := &sec.AuthClaims{UserID: 42, Role: sec.RoleUser}

	_, err := service.Create(context.Background(), actor, knownTitleID, knownReviewID, "   ")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_Update_Ownership verifies the ownership rule on comment edits.
*/
func TestService_Update_Ownership(t *testing.T) {
	service, _ := newTestService()
	author := &sec.AuthClaims{UserID: 42, Role: sec.RoleUser}

	created, err := service.Create(context.Background(), author, knownTitleID, knownReviewID, "original")
	require.NoError(t, err)

	stranger := &sec.AuthClaims{UserID: 7, Role: sec.RoleUser}
	_, err = service.Update(context.Background(), stranger, knownTitleID, knownReviewID, created.ID, "hijacked")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	moderator := &sec.AuthClaims{UserID: 7, Role: sec.RoleModerator}
	updated, err := service.Update(context.Background(), moderator, knownTitleID, knownReviewID, created.ID, "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Text)
}

/*
TestService_Delete_Ownership verifies the ownership rule on comment removal.
*/
func TestService_Delete_Ownership(t *testing.T) {
	service, repo := newTestService()
	author := &sec.AuthClaims{UserID: 42, Role: sec.RoleUser}

	created, err := service.Create(context.Background(), author, knownTitleID, knownReviewID, "original")
	require.NoError(t, err)

	stranger := &sec.AuthClaims{UserID: 7, Role: sec.RoleUser}
	err = service.Delete(context.Background(), stranger, knownTitleID, knownReviewID, created.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	require.NoError(t, service.Delete(context.Background(), author, knownTitleID, knownReviewID, created.ID))
	assert.Empty(t, repo.comments)
}

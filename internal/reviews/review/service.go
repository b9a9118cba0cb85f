// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package review implements scored user reviews nested under catalog titles.

# Access Policy

Reading is public. Creating a review requires authentication. Editing and
deleting follow the ownership rule: the author may touch their own review,
moderators and admins may touch anyone's. The one-review-per-title rule is
checked in the service for a friendly message and enforced by a database
unique constraint against races.
*/
package review

import (
	"context"
	"log/slog"

	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/title"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/validate"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

// TitleResolver confirms a title exists before reviews are read or written
// under it. A missing title turns the whole nested route into a 404.
type TitleResolver interface {
	Get(context context.Context, id int64) (*title.Title, error)
}

type Service struct {
	repo   Repository
	titles TitleResolver
	logger *slog.Logger
}

func NewService(repo Repository, titles TitleResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, titleID int64, page pagination.Params) ([]*Review, int, error) {
	if _, err := service.titles.Get(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByTitle(context, titleID, page)
}

func (service *Service) Get(context context.Context, titleID, reviewID int64) (*Review, error) {
	return service.repo.GetByID(context, titleID, reviewID)
}

// CreateInput holds the data for a new review.
type CreateInput struct {
	Text  string
	Score int
}

/*
Create posts a new review on behalf of the authenticated actor.

Returns:
  - *Review: The persisted review
  - error: NotFound (unknown title), Conflict (second review on the same
    title), or validation failures
*/
func (service *Service) Create(context context.Context, actor *sec.AuthClaims, titleID int64, input CreateInput) (*Review, error) {
	v := &validate.Validator{}
	v.Required("text", input.Text).
		Range("score", input.Score, MinScore, MaxScore)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := service.titles.Get(context, titleID); err != nil {
		return nil, err
	}

	// Pre-check for a friendly message. The unique constraint remains the
	// authoritative guard: a racing duplicate still comes back as a 409
	// from the store.
	exists, err := service.repo.ExistsByAuthorAndTitle(context, actor.UserID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("You have already reviewed this title")
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     input.Text,
		Score:    input.Score,
	}
	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
		slog.Int64("user_id", actor.UserID),
	)
	return review, nil
}

// UpdateInput holds a partial review update. Nil fields are left untouched.
type UpdateInput struct {
	Text  *string
	Score *int
}

/*
Update edits an existing review under the ownership rule.

Returns:
  - *Review: The updated review
  - error: NotFound, Forbidden (actor is neither author nor staff), or
    validation failures
*/
func (service *Service) Update(context context.Context, actor *sec.AuthClaims, titleID, reviewID int64, input UpdateInput) (*Review, error) {
	review, err := service.repo.GetByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !actor.CanModifyContent(review.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify this review")
	}

	v := &validate.Validator{}
	if input.Text != nil {
		v.Required("text", *input.Text)
	}
	if input.Score != nil {
		v.Range("score", *input.Score, MinScore, MaxScore)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated",
		slog.Int64("review_id", review.ID),
		slog.Int64("user_id", actor.UserID),
	)
	return review, nil
}

/*
Delete removes a review under the ownership rule. Comments under the review
are removed by the database cascade.
*/
func (service *Service) Delete(context context.Context, actor *sec.AuthClaims, titleID, reviewID int64) error {
	review, err := service.repo.GetByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !actor.CanModifyContent(review.AuthorID) {
		return apperr.Forbidden("You cannot delete this review")
	}

	if err := service.repo.Delete(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Info("review_deleted",
		slog.Int64("review_id", reviewID),
		slog.Int64("user_id", actor.UserID),
	)
	return nil
}

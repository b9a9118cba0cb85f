// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package comment implements user comments nested under reviews.

Reading is public. Posting requires authentication; editing and deleting
follow the same ownership rule as reviews: author, moderator, or admin.
*/
package comment

import (
	"context"
	"log/slog"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/validate"
	"github.com/polyakovaevgenia/api-yamdb/internal/reviews/review"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

// ReviewResolver confirms the parent review exists under the given title.
// A missing title or review turns the nested route into a 404.
type ReviewResolver interface {
	Get(context context.Context, titleID, reviewID int64) (*review.Review, error)
}

type Service struct {
	repo    Repository
	reviews ReviewResolver
	logger  *slog.Logger
}

func NewService(repo Repository, reviews ReviewResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		reviews: reviews,
		logger:  logger,
	}
}

func (service *Service) List(context context.Context, titleID, reviewID int64, page pagination.Params) ([]*Comment, int, error) {
	if _, err := service.reviews.Get(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByReview(context, reviewID, page)
}

func (service *Service) Get(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if _, err := service.reviews.Get(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetByID(context, reviewID, commentID)
}

func (service *Service) Create(context context.Context, actor *sec.AuthClaims, titleID, reviewID int64, text string) (*Comment, error) {
	v := &validate.Validator{}
	v.Required("text", text)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := service.reviews.Get(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     text,
	}
	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
		slog.Int64("user_id", actor.UserID),
	)
	return comment, nil
}

func (service *Service) Update(context context.Context, actor *sec.AuthClaims, titleID, reviewID, commentID int64, text string) (*Comment, error) {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !actor.CanModifyContent(comment.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify this comment")
	}

	v := &validate.Validator{}
	v.Required("text", text)
	if err := v.Err(); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("user_id", actor.UserID),
	)
	return comment, nil
}

func (service *Service) Delete(context context.Context, actor *sec.AuthClaims, titleID, reviewID, commentID int64) error {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !actor.CanModifyContent(comment.AuthorID) {
		return apperr.Forbidden("You cannot delete this comment")
	}

	if err := service.repo.Delete(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.Int64("comment_id", commentID),
		slog.Int64("user_id", actor.UserID),
	)
	return nil
}

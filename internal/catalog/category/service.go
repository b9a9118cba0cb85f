package category

import (
	"context"
	"log/slog"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/validate"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
	"github.com/polyakovaevgenia/api-yamdb/pkg/slug"
)

const maxNameLength = 256
const maxSlugLength = 50

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, search string, page pagination.Params) ([]*Category, int, error) {
	return service.repo.List(context, search, page)
}

func (service *Service) GetBySlug(context context.Context, categorySlug string) (*Category, error) {
	return service.repo.GetBySlug(context, categorySlug)
}

// CreateInput holds the data for a new category. Slug is optional and is
// derived from Name when empty.
type CreateInput struct {
	Name string
	Slug string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, maxNameLength).
		Slug("slug", input.Slug).
		MaxLen("slug", input.Slug, maxSlugLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	category := &Category{
		Name: input.Name,
		Slug: input.Slug,
	}
	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))
	return category, nil
}

func (service *Service) Delete(context context.Context, categorySlug string) error {
	if err := service.repo.DeleteBySlug(context, categorySlug); err != nil {
		return err
	}
	service.logger.Info("category_deleted", slog.String("slug", categorySlug))
	return nil
}

package genre

import (
	"context"
	"log/slog"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
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

func (service *Service) List(context context.Context, search string, page pagination.Params) ([]*Genre, int, error) {
	return service.repo.List(context, search, page)
}

// Resolve maps a set of genre slugs to their entities. An unknown slug fails
// the whole resolution so a title can never reference a phantom genre.
func (service *Service) Resolve(context context.Context, slugs []string) ([]*Genre, error) {
	genres, err := service.repo.GetBySlugs(context, slugs)
	if err != nil {
		return nil, err
	}

	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		for _, s := range slugs {
			if !found[s] {
				return nil, apperr.NotFound("Genre " + s)
			}
		}
	}

	return genres, nil
}

// CreateInput holds the data for a new genre. Slug is optional and is
// derived from Name when empty.
type CreateInput struct {
	Name string
	Slug string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Genre, error) {
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

	genre := &Genre{
		Name: input.Name,
		Slug: input.Slug,
	}
	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))
	return genre, nil
}

func (service *Service) Delete(context context.Context, genreSlug string) error {
	if err := service.repo.DeleteBySlug(context, genreSlug); err != nil {
		return err
	}
	service.logger.Info("genre_deleted", slog.String("slug", genreSlug))
	return nil
}

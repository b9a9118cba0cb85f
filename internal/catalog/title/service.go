package title

import (
	"context"
	"log/slog"

	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/category"
	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/genre"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/validate"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

const maxNameLength = 256

// CategoryResolver looks up a category by its slug.
type CategoryResolver interface {
	GetBySlug(context context.Context, slug string) (*category.Category, error)
}

// GenreResolver maps genre slugs to entities, failing on unknown slugs.
type GenreResolver interface {
	Resolve(context context.Context, slugs []string) ([]*genre.Genre, error)
}

type Service struct {
	repo       Repository
	categories CategoryResolver
	genres     GenreResolver
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryResolver, genres GenreResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	return service.repo.List(context, filter, page)
}

func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.GetByID(context, id)
}

// CreateInput holds the data for a new catalog entry. Genres and category
// are referenced by slug, matching the public identifiers of the reference
// endpoints.
type CreateInput struct {
	Name         string
	Year         int
	Description  *string
	GenreSlugs   []string
	CategorySlug string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, maxNameLength).
		Year("year", input.Year).
		Custom("genre", len(input.GenreSlugs) == 0, "At least one genre is required").
		Required("category", input.CategorySlug)
	if err := v.Err(); err != nil {
		return nil, err
	}

	cat, err := service.categories.GetBySlug(context, input.CategorySlug)
	if err != nil {
		return nil, err
	}

	genres, err := service.genres.Resolve(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    cat,
	}
	genreIDs := make([]int64, 0, len(genres))
	for _, g := range genres {
		title.Genres = append(title.Genres, *g)
		genreIDs = append(genreIDs, g.ID)
	}

	if err := service.repo.Create(context, title, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int64("title_id", title.ID),
		slog.String("name", title.Name),
	)
	return title, nil
}

// UpdateInput holds a partial update. Nil fields are left untouched;
// GenreSlugs == nil keeps the current genre set while an empty slice is
// rejected, so a title always carries at least one genre.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	GenreSlugs   []string
	CategorySlug *string
}

func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Title, error) {
	title, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, maxNameLength)
	}
	if input.Year != nil {
		v.Year("year", *input.Year)
	}
	if input.GenreSlugs != nil {
		v.Custom("genre", len(input.GenreSlugs) == 0, "At least one genre is required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}
	if input.CategorySlug != nil {
		cat, err := service.categories.GetBySlug(context, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.Category = cat
	}

	var genreIDs []int64
	if input.GenreSlugs != nil {
		genres, err := service.genres.Resolve(context, input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		title.Genres = title.Genres[:0]
		genreIDs = make([]int64, 0, len(genres))
		for _, g := range genres {
			title.Genres = append(title.Genres, *g)
			genreIDs = append(genreIDs, g.ID)
		}
	}

	if err := service.repo.Update(context, title, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("title_id", title.ID))
	return title, nil
}

func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.logger.Info("title_deleted", slog.Int64("title_id", id))
	return nil
}

package genre_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/genre"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

type fakeRepository struct {
	bySlug map[string]*genre.Genre
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bySlug: map[string]*genre.Genre{}}
}

func (r *fakeRepository) List(_ context.Context, _ string, _ pagination.Params) ([]*genre.Genre, int, error) {
	out := make([]*genre.Genre, 0, len(r.bySlug))
	for _, g := range r.bySlug {
		out = append(out, g)
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetBySlug(_ context.Context, slug string) (*genre.Genre, error) {
	if g, ok := r.bySlug[slug]; ok {
		return g, nil
	}
	return nil, apperr.NotFound("Genre")
}

func (r *fakeRepository) GetBySlugs(_ context.Context, slugs []string) ([]*genre.Genre, error) {
	out := []*genre.Genre{}
	for _, s := range slugs {
		if g, ok := r.bySlug[s]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeRepository) Create(_ context.Context, g *genre.Genre) error {
	if _, ok := r.bySlug[g.Slug]; ok {
		return apperr.Conflict("Genre with this name or slug already exists")
	}
	r.nextID++
	g.ID = r.nextID
	r.bySlug[g.Slug] = g
	return nil
}

func (r *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := r.bySlug[slug]; !ok {
		return apperr.NotFound("Genre")
	}
	delete(r.bySlug, slug)
	return nil
}

func newTestService() *genre.Service {
	repo := newFakeRepository()
	repo.bySlug["sci-fi"] = &genre.Genre{ID: 1, Name: "Sci-Fi", Slug: "sci-fi"}
	repo.bySlug["drama"] = &genre.Genre{ID: 2, Name: "Drama", Slug: "drama"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return genre.NewService(repo, logger)
}

/*
TestService_Resolve maps slugs to entities and fails the whole set on any
unknown slug, naming the offender.
*/
func TestService_Resolve(t *testing.T) {
	service := newTestService()

	genres, err := service.Resolve(context.Background(), []string{"sci-fi", "drama"})
	require.NoError(t, err)
	assert.Len(t, genres, 2)

	_, err = service.Resolve(context.Background(), []string{"sci-fi", "jazz"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Contains(t, ae.Message, "jazz")
}

/*
TestService_Create_DerivesSlug checks slug generation from the name.
*/
func TestService_Create_DerivesSlug(t *testing.T) {
	service := newTestService()

	created, err := service.Create(context.Background(), genre.CreateInput{Name: "Rock & Roll"})
	require.NoError(t, err)
	assert.Equal(t, "rock-roll", created.Slug)
}

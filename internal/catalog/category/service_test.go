package category_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/category"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

type fakeRepository struct {
	bySlug map[string]*category.Category
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bySlug: map[string]*category.Category{}}
}

func (r *fakeRepository) List(_ context.Context, _ string, _ pagination.Params) ([]*category.Category, int, error) {
	out := make([]*category.Category, 0, len(r.bySlug))
	for _, c := range r.bySlug {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := r.bySlug[slug]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Category")
}

func (r *fakeRepository) Create(_ context.Context, c *category.Category) error {
	if _, ok := r.bySlug[c.Slug]; ok {
		return apperr.Conflict("Category with this name or slug already exists")
	}
	r.nextID++
	c.ID = r.nextID
	r.bySlug[c.Slug] = c
	return nil
}

func (r *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := r.bySlug[slug]; !ok {
		return apperr.NotFound("Category")
	}
	delete(r.bySlug, slug)
	return nil
}

func newTestService() (*category.Service, *fakeRepository) {
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return category.NewService(repo, logger), repo
}

/*
TestService_Create_DerivesSlug verifies the slug is generated from the name
when omitted, and kept as given otherwise.
*/
func TestService_Create_DerivesSlug(t *testing.T) {
	service, _ := newTestService()

	derived, err := service.Create(context.Background(), category.CreateInput{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", derived.Slug)

	explicit, err := service.Create(context.Background(), category.CreateInput{Name: "Films", Slug: "movies"})
	require.NoError(t, err)
	assert.Equal(t, "movies", explicit.Slug)
}

/*
TestService_Create_Validation rejects bad names and malformed slugs.
*/
func TestService_Create_Validation(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name  string
		input category.CreateInput
	}{
		{"empty_name", category.CreateInput{Name: ""}},
		{"bad_slug", category.CreateInput{Name: "Films", Slug: "Фильмы"}},
		{"uppercase_slug", category.CreateInput{Name: "Films", Slug: "Films"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_Create_Duplicate surfaces the storage conflict unchanged.
*/
func TestService_Create_Duplicate(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), category.CreateInput{Name: "Films", Slug: "films"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), category.CreateInput{Name: "Movies", Slug: "films"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Delete removes by slug and 404s on a phantom slug.
*/
func TestService_Delete(t *testing.T) {
	service, repo := newTestService()

	_, err := service.Create(context.Background(), category.CreateInput{Name: "Films", Slug: "films"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "films"))
	assert.Empty(t, repo.bySlug)

	err = service.Delete(context.Background(), "films")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

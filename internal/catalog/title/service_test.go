package title_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/category"
	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/genre"
	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/title"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pointer"
)

type fakeRepository struct {
	titles       map[int64]*title.Title
	nextID       int64
	lastGenreIDs []int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{titles: map[int64]*title.Title{}}
}

func (r *fakeRepository) List(_ context.Context, _ title.Filter, _ pagination.Params) ([]*title.Title, int, error) {
	out := make([]*title.Title, 0, len(r.titles))
	for _, t := range r.titles {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetByID(_ context.Context, id int64) (*title.Title, error) {
	if t, ok := r.titles[id]; ok {
		return t, nil
	}
	return nil, apperr.NotFound("Title")
}

func (r *fakeRepository) Create(_ context.Context, t *title.Title, genreIDs []int64) error {
	r.nextID++
	t.ID = r.nextID
	r.titles[t.ID] = t
	r.lastGenreIDs = genreIDs
	return nil
}

func (r *fakeRepository) Update(_ context.Context, t *title.Title, genreIDs []int64) error {
	r.titles[t.ID] = t
	r.lastGenreIDs = genreIDs
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(r.titles, id)
	return nil
}

type fakeCategories struct {
	bySlug map[string]*category.Category
}

func (r *fakeCategories) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := r.bySlug[slug]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Category")
}

type fakeGenres struct {
	bySlug map[string]*genre.Genre
}

func (r *fakeGenres) Resolve(_ context.Context, slugs []string) ([]*genre.Genre, error) {
	out := make([]*genre.Genre, 0, len(slugs))
	for _, s := range slugs {
		g, ok := r.bySlug[s]
		if !ok {
			return nil, apperr.NotFound("Genre " + s)
		}
		out = append(out, g)
	}
	return out, nil
}

func newTestService() (*title.Service, *fakeRepository) {
	repo := newFakeRepository()
	categories := &fakeCategories{bySlug: map[string]*category.Category{
		"films": {ID: 1, Name: "Films", Slug: "films"},
		"books": {ID: 2, Name: "Books", Slug: "books"},
	}}
	genres := &fakeGenres{bySlug: map[string]*genre.Genre{
		"sci-fi": {ID: 10, Name: "Sci-Fi", Slug: "sci-fi"},
		"drama":  {ID: 11, Name: "Drama", Slug: "drama"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return title.NewService(repo, categories, genres, logger), repo
}

/*
TestService_Create resolves category and genres by slug and persists the
join rows.
*/
func TestService_Create(t *testing.T) {
	service, repo := newTestService()

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		GenreSlugs:   []string{"sci-fi", "drama"},
		CategorySlug: "films",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	require.NotNil(t, created.Category)
	assert.Equal(t, "films", created.Category.Slug)
	assert.Len(t, created.Genres, 2)
	assert.Equal(t, []int64{10, 11}, repo.lastGenreIDs)
}

/*
TestService_Create_Validation covers input rejection before any lookups.
*/
func TestService_Create_Validation(t *testing.T) {
	service, repo := newTestService()
	nextYear := time.Now().Year() + 1

	tests := []struct {
		name  string
		input title.CreateInput
	}{
		{
			"empty_name",
			title.CreateInput{Year: 1972, GenreSlugs: []string{"sci-fi"}, CategorySlug: "films"},
		},
		{
			"future_year",
			title.CreateInput{Name: "Solaris", Year: nextYear, GenreSlugs: []string{"sci-fi"}, CategorySlug: "films"},
		},
		{
			"no_genres",
			title.CreateInput{Name: "Solaris", Year: 1972, CategorySlug: "films"},
		},
		{
			"no_category",
			title.CreateInput{Name: "Solaris", Year: 1972, GenreSlugs: []string{"sci-fi"}},
		},
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

	assert.Empty(t, repo.titles)
}

/*
TestService_Create_UnknownReferences maps phantom slugs to 404.
*/
func TestService_Create_UnknownReferences(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		GenreSlugs:   []string{"sci-fi"},
		CategorySlug: "podcasts",
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	_, err = service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		GenreSlugs:   []string{"sci-fi", "jazz"},
		CategorySlug: "films",
	})
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Update_PartialFields verifies nil fields are untouched and a nil
genre set keeps the current genres.
*/
func TestService_Update_PartialFields(t *testing.T) {
	service, repo := newTestService()

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		GenreSlugs:   []string{"sci-fi"},
		CategorySlug: "films",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, title.UpdateInput{
		Description: pointer.To("Tarkovsky adaptation"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Solaris", updated.Name)
	assert.Equal(t, 1972, updated.Year)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Tarkovsky adaptation", *updated.Description)

	// GenreSlugs == nil keeps the genre set unchanged
	assert.Len(t, updated.Genres, 1)
	assert.Nil(t, repo.lastGenreIDs)
}

/*
TestService_Update_EmptyGenreSet rejects stripping a title of all genres.
*/
func TestService_Update_EmptyGenreSet(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		GenreSlugs:   []string{"sci-fi"},
		CategorySlug: "films",
	})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), created.ID, title.UpdateInput{
		GenreSlugs: []string{},
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_Update_ReplacesGenres verifies an explicit genre set replaces the
old one.
*/
func TestService_Update_ReplacesGenres(t *testing.T) {
	service, repo := newTestService()

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		GenreSlugs:   []string{"sci-fi"},
		CategorySlug: "films",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, title.UpdateInput{
		GenreSlugs: []string{"drama"},
	})
	require.NoError(t, err)

	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "drama", updated.Genres[0].Slug)
	assert.Equal(t, []int64{11}, repo.lastGenreIDs)
}

/*
TestService_Delete removes the record and 404s on a repeat.
*/
func TestService_Delete(t *testing.T) {
	service, repo := newTestService()

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		GenreSlugs:   []string{"sci-fi"},
		CategorySlug: "films",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.titles)

	err = service.Delete(context.Background(), created.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/category"
	"github.com/polyakovaevgenia/api-yamdb/internal/catalog/genre"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/database/schema"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/dberr"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// baseSelect joins the category and the per-title average review score.
// The average is computed at read time so it can never drift from the
// underlying reviews.
func baseSelect() string {
	return fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		       c.%s, c.%s, c.%s,
		       r.rating
		FROM %s t
		LEFT JOIN %s c ON t.%s = c.%s
		LEFT JOIN (
			SELECT %s, AVG(%s)::float8 AS rating FROM %s GROUP BY %s
		) r ON r.%s = t.%s
	`,
		schema.Title.ID, schema.Title.Name, schema.Title.Year, schema.Title.Description,
		schema.Title.CreatedAt, schema.Title.UpdatedAt,
		schema.Category.ID, schema.Category.Name, schema.Category.Slug,
		schema.Title.Table,
		schema.Category.Table, schema.Title.CategoryID, schema.Category.ID,
		schema.Review.TitleID, schema.Review.Score, schema.Review.Table, schema.Review.TitleID,
		schema.Review.TitleID, schema.Title.ID,
	)
}

// scanTitle hydrates a title row, tolerating a missing category.
func scanTitle(row interface{ Scan(...any) error }) (*Title, error) {
	t := &Title{Genres: make([]genre.Genre, 0)}
	var catID *int64
	var catName, catSlug *string

	err := row.Scan(
		&t.ID, &t.Name, &t.Year, &t.Description, &t.CreatedAt, &t.UpdatedAt,
		&catID, &catName, &catSlug,
		&t.Rating,
	)
	if err != nil {
		return nil, err
	}

	if catID != nil {
		t.Category = &category.Category{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	return t, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	conditions := []string{}
	args := []any{}

	next := func() int { return len(args) + 1 }

	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("c.%s = $%d", schema.Category.Slug, next()))
		args = append(args, filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s tg JOIN %s g ON tg.%s = g.%s WHERE tg.%s = t.%s AND g.%s = $%d)",
			schema.TitleGenre.Table, schema.Genre.Table,
			schema.TitleGenre.GenreID, schema.Genre.ID,
			schema.TitleGenre.TitleID, schema.Title.ID,
			schema.Genre.Slug, next()))
		args = append(args, filter.GenreSlug)
	}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("t.%s = $%d", schema.Title.Year, next()))
		args = append(args, filter.Year)
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("t.%s ILIKE $%d", schema.Title.Name, next()))
		args = append(args, "%"+filter.Name+"%")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s t LEFT JOIN %s c ON t.%s = c.%s %s`,
		schema.Title.Table, schema.Category.Table, schema.Title.CategoryID, schema.Category.ID, where)
	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	query := fmt.Sprintf(`%s %s ORDER BY t.%s ASC, t.%s ASC LIMIT $%d OFFSET $%d`,
		baseSelect(), where, schema.Title.Name, schema.Title.ID, next(), next()+1)
	args = append(args, page.Limit, page.Offset())

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	titleIDs := make([]int64, 0)
	byID := make(map[int64]*Title)

	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, t)
		titleIDs = append(titleIDs, t.ID)
		byID[t.ID] = t
	}
	rows.Close()

	if err := repository.attachGenres(context, titleIDs, byID); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Title, error) {
	query := fmt.Sprintf(`%s WHERE t.%s = $1`, baseSelect(), schema.Title.ID)

	t, err := scanTitle(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_title_by_id")
	}

	if err := repository.attachGenres(context, []int64{t.ID}, map[int64]*Title{t.ID: t}); err != nil {
		return nil, err
	}
	return t, nil
}

// attachGenres batch-loads the genre sets for the given title ids.
func (repository *PostgresRepository) attachGenres(context context.Context, titleIDs []int64, byID map[int64]*Title) error {
	if len(titleIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON tg.%s = g.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s ASC`,
		schema.TitleGenre.TitleID, schema.Genre.ID, schema.Genre.Name, schema.Genre.Slug,
		schema.TitleGenre.Table, schema.Genre.Table,
		schema.TitleGenre.GenreID, schema.Genre.ID,
		schema.TitleGenre.TitleID, schema.Genre.Name)

	rows, err := repository.db.Query(context, query, titleIDs)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		g := genre.Genre{}
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, g)
		}
	}

	return nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title, genreIDs []int64) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	var categoryID *int64
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s, %s`,
		schema.Title.Table, schema.Title.Name, schema.Title.Year, schema.Title.Description, schema.Title.CategoryID,
		schema.Title.ID, schema.Title.CreatedAt, schema.Title.UpdatedAt)

	err = tx.QueryRow(context, insertQuery, title.Name, title.Year, title.Description, categoryID).
		Scan(&title.ID, &title.CreatedAt, &title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := replaceGenres(context, tx, title.ID, genreIDs); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, genreIDs []int64) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	var categoryID *int64
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NOW() WHERE %s = $5 RETURNING %s`,
		schema.Title.Table, schema.Title.Name, schema.Title.Year, schema.Title.Description,
		schema.Title.CategoryID, schema.Title.UpdatedAt, schema.Title.ID, schema.Title.UpdatedAt)

	err = tx.QueryRow(context, updateQuery, title.Name, title.Year, title.Description, categoryID, title.ID).
		Scan(&title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}

	// nil means the genre set was not part of the update.
	if genreIDs != nil {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.TitleGenre.Table, schema.TitleGenre.TitleID)
		if _, err := tx.Exec(context, deleteQuery, title.ID); err != nil {
			return dberr.Wrap(err, "clear_title_genres")
		}
		if err := replaceGenres(context, tx, title.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}
	return nil
}

func replaceGenres(context context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.TitleGenre.Table, schema.TitleGenre.TitleID, schema.TitleGenre.GenreID)

	for _, genreID := range genreIDs {
		if _, err := tx.Exec(context, query, titleID, genreID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Title.Table, schema.Title.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

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

// baseSelect joins the author account so the response can carry the
// username instead of a bare id.
func baseSelect() string {
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, u.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s u ON r.%s = u.%s
	`,
		schema.Review.ID, schema.Review.TitleID, schema.Review.AuthorID, schema.UserAccount.Username,
		schema.Review.Text, schema.Review.Score, schema.Review.CreatedAt, schema.Review.UpdatedAt,
		schema.Review.Table,
		schema.UserAccount.Table, schema.Review.AuthorID, schema.UserAccount.ID,
	)
}

func scanReview(row interface{ Scan(...any) error }) (*Review, error) {
	r := &Review{}
	err := row.Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int64, page pagination.Params) ([]*Review, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.Review.Table, schema.Review.TitleID)
	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	query := fmt.Sprintf(`%s WHERE r.%s = $1 ORDER BY r.%s DESC, r.%s DESC LIMIT $2 OFFSET $3`,
		baseSelect(), schema.Review.TitleID, schema.Review.CreatedAt, schema.Review.ID)

	rows, err := repository.db.Query(context, query, titleID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, titleID, reviewID int64) (*Review, error) {
	query := fmt.Sprintf(`%s WHERE r.%s = $1 AND r.%s = $2`,
		baseSelect(), schema.Review.TitleID, schema.Review.ID)

	r, err := scanReview(repository.db.QueryRow(context, query, titleID, reviewID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_review_by_id")
	}
	return r, nil
}

func (repository *PostgresRepository) ExistsByAuthorAndTitle(context context.Context, authorID, titleID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Review.Table, schema.Review.AuthorID, schema.Review.TitleID)

	var exists bool
	if err := repository.db.QueryRow(context, query, authorID, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_review_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s, %s`,
		schema.Review.Table, schema.Review.TitleID, schema.Review.AuthorID, schema.Review.Text, schema.Review.Score,
		schema.Review.ID, schema.Review.CreatedAt, schema.Review.UpdatedAt)

	err := repository.db.QueryRow(context, query, review.TitleID, review.AuthorID, review.Text, review.Score).
		Scan(&review.ID, &review.PubDate, &review.UpdatedAt)
	if err != nil {
		return wrapCreateError(err)
	}
	return nil
}

// wrapCreateError maps the author+title unique constraint to the same
// conflict the service pre-check produces, so a racing insert that slips
// past the pre-check still surfaces as 409. Everything else goes through
// the generic mapping.
func wrapCreateError(err error) error {
	if dberr.UniqueConstraint(err) == schema.UniqueAuthorTitle {
		return apperr.Conflict("You have already reviewed this title")
	}
	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = NOW() WHERE %s = $3 RETURNING %s`,
		schema.Review.Table, schema.Review.Text, schema.Review.Score, schema.Review.UpdatedAt,
		schema.Review.ID, schema.Review.UpdatedAt)

	err := repository.db.QueryRow(context, query, review.Text, review.Score, review.ID).
		Scan(&review.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, titleID, reviewID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Review.Table, schema.Review.TitleID, schema.Review.ID)

	tag, err := repository.db.Exec(context, query, titleID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

package comment

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

func baseSelect() string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s u ON c.%s = u.%s
	`,
		schema.Comment.ID, schema.Comment.ReviewID, schema.Comment.AuthorID, schema.UserAccount.Username,
		schema.Comment.Text, schema.Comment.CreatedAt, schema.Comment.UpdatedAt,
		schema.Comment.Table,
		schema.UserAccount.Table, schema.Comment.AuthorID, schema.UserAccount.ID,
	)
}

func scanComment(row interface{ Scan(...any) error }) (*Comment, error) {
	c := &Comment{}
	err := row.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.PubDate, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID int64, page pagination.Params) ([]*Comment, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.Comment.Table, schema.Comment.ReviewID)
	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := fmt.Sprintf(`%s WHERE c.%s = $1 ORDER BY c.%s ASC, c.%s ASC LIMIT $2 OFFSET $3`,
		baseSelect(), schema.Comment.ReviewID, schema.Comment.CreatedAt, schema.Comment.ID)

	rows, err := repository.db.Query(context, query, reviewID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, reviewID, commentID int64) (*Comment, error) {
	query := fmt.Sprintf(`%s WHERE c.%s = $1 AND c.%s = $2`,
		baseSelect(), schema.Comment.ReviewID, schema.Comment.ID)

	c, err := scanComment(repository.db.QueryRow(context, query, reviewID, commentID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment_by_id")
	}
	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s, %s`,
		schema.Comment.Table, schema.Comment.ReviewID, schema.Comment.AuthorID, schema.Comment.Text,
		schema.Comment.ID, schema.Comment.CreatedAt, schema.Comment.UpdatedAt)

	err := repository.db.QueryRow(context, query, comment.ReviewID, comment.AuthorID, comment.Text).
		Scan(&comment.ID, &comment.PubDate, &comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2 RETURNING %s`,
		schema.Comment.Table, schema.Comment.Text, schema.Comment.UpdatedAt,
		schema.Comment.ID, schema.Comment.UpdatedAt)

	err := repository.db.QueryRow(context, query, comment.Text, comment.ID).
		Scan(&comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID, commentID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Comment.Table, schema.Comment.ReviewID, schema.Comment.ID)

	tag, err := repository.db.Exec(context, query, reviewID, commentID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

package review

import (
	"context"

	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

type Repository interface {
	ListByTitle(context context.Context, titleID int64, page pagination.Params) ([]*Review, int, error)
	GetByID(context context.Context, titleID, reviewID int64) (*Review, error)
	ExistsByAuthorAndTitle(context context.Context, authorID, titleID int64) (bool, error)
	Create(context context.Context, review *Review) error
	Update(context context.Context, review *Review) error
	Delete(context context.Context, titleID, reviewID int64) error
}

package title

import (
	"context"

	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

type Repository interface {
	List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error)
	GetByID(context context.Context, id int64) (*Title, error)
	Create(context context.Context, title *Title, genreIDs []int64) error
	Update(context context.Context, title *Title, genreIDs []int64) error
	Delete(context context.Context, id int64) error
}

// Copyright (c) 2026 YaMDb. All rights reserved.

package account

import (
	"context"

	"github.com/polyakovaevgenia/api-yamdb/internal/users/auth"
	"github.com/polyakovaevgenia/api-yamdb/pkg/pagination"
)

// Repository defines the data access contract for account administration.
//
// It operates on the same users.account rows as the auth domain but covers
// the administrative surface: listing, editing, and removing accounts.
type Repository interface {
	List(context context.Context, search string, page pagination.Params) ([]*auth.User, int, error)
	FindByID(context context.Context, id int64) (*auth.User, error)
	FindByUsername(context context.Context, username string) (*auth.User, error)
	Create(context context.Context, user *auth.User) error
	Update(context context.Context, user *auth.User) error
	DeleteByUsername(context context.Context, username string) error
}

// Copyright (c) 2026 YaMDb. All rights reserved.

package review

import (
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/database/schema"
)

/*
TestWrapCreateError verifies the database-level uniqueness fallback: a racing
insert that violates the author+title constraint yields the same conflict the
service pre-check produces, while other integrity violations keep their
generic mapping.
*/
func TestWrapCreateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			"duplicate_review",
			&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: schema.UniqueAuthorTitle},
			"CONFLICT",
		},
		{
			"other_unique_violation",
			&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "some_other_key"},
			"CONFLICT",
		},
		{
			"missing_title",
			&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			"NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapCreateError(tt.err)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}

	t.Run("duplicate_review_message", func(t *testing.T) {
		err := wrapCreateError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: schema.UniqueAuthorTitle,
		})
		assert.EqualError(t, err, "You have already reviewed this title")
	})
}

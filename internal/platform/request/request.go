// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/polyakovaevgenia/api-yamdb/internal/platform/apperr"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/ctxutil"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/sec"
	"github.com/polyakovaevgenia/api-yamdb/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// It returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter (slug or username) from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntParam retrieves a named URL parameter and parses it as a numeric
// surrogate id. A malformed id maps to NOT_FOUND rather than a validation
// error: "/titles/abc" names a resource that cannot exist.
func IntParam(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.NotFound("Resource")
	}
	return id, nil
}

// Actor extracts the authenticated actor claims from the request context.
// Returns nil if the request is anonymous.
func Actor(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetActor(request.Context())
}

// RequiredActor ensures the request is authenticated and returns the actor claims.
// Returns apperr.Unauthorized if the request is anonymous.
func RequiredActor(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetActor(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

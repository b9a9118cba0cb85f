// Copyright (c) 2026 YaMDb. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polyakovaevgenia/api-yamdb/pkg/slug"
)

/*
TestFrom verifies the name-to-slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Films", "films"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Café Société", "cafe-societe"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"digits", "Top 100", "top-100"},
		{"leading_trailing", "  Books  ", "books"},
		{"already_slug", "sci-fi", "sci-fi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

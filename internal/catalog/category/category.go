package category

import "time"

// Category groups titles by the kind of work they are ("Films", "Books",
// "Music"). Each title belongs to at most one category.
type Category struct {
	ID        int64     `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

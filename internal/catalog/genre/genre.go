package genre

import "time"

// Genre labels the style of a title ("Sci-Fi", "Rock", "Arthouse"). A title
// carries one or more genres.
type Genre struct {
	ID        int64     `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

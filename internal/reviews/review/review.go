package review

import "time"

// Review is a scored opinion a user leaves on a title. A user may review a
// given title at most once; the database enforces this with a unique
// constraint on (author, title).
type Review struct {
	ID        int64     `json:"id"`
	TitleID   int64     `json:"-"`
	AuthorID  int64     `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	PubDate   time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

// Score bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 10
)

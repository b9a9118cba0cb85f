package comment

import "time"

// Comment is a reply a user leaves on a review. Unlike reviews, a user may
// leave any number of comments.
type Comment struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"-"`
	AuthorID  int64     `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	PubDate   time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

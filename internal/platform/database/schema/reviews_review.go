package schema

// ReviewTable represents the 'reviews.review' table
type ReviewTable struct {
	Table     string
	ID        string
	TitleID   string
	AuthorID  string
	Text      string
	Score     string
	CreatedAt string
	UpdatedAt string
}

// Review is the schema definition for reviews.review
var Review = ReviewTable{
	Table:     "reviews.review",
	ID:        "id",
	TitleID:   "titleid",
	AuthorID:  "authorid",
	Text:      "text",
	Score:     "score",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// UniqueAuthorTitle is the constraint guarding one review per author per title.
const UniqueAuthorTitle = "review_author_title_key"

package schema

// CommentTable represents the 'reviews.comment' table
type CommentTable struct {
	Table     string
	ID        string
	ReviewID  string
	AuthorID  string
	Text      string
	CreatedAt string
	UpdatedAt string
}

// Comment is the schema definition for reviews.comment
var Comment = CommentTable{
	Table:     "reviews.comment",
	ID:        "id",
	ReviewID:  "reviewid",
	AuthorID:  "authorid",
	Text:      "text",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

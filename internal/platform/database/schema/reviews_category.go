package schema

// CategoryTable represents the 'reviews.category' table
type CategoryTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// Category is the schema definition for reviews.category
var Category = CategoryTable{
	Table:     "reviews.category",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}

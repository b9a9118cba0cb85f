package schema

// GenreTable represents the 'reviews.genre' table
type GenreTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// Genre is the schema definition for reviews.genre
var Genre = GenreTable{
	Table:     "reviews.genre",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}

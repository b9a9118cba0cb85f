package schema

// TitleGenreTable represents the 'reviews.titlegenre' table
type TitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// TitleGenre is the schema definition for reviews.titlegenre
var TitleGenre = TitleGenreTable{
	Table:   "reviews.titlegenre",
	TitleID: "titleid",
	GenreID: "genreid",
}

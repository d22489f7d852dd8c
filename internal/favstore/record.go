package favstore

// Record is a favorited book as held by the store: a canonical ref plus the
// denormalized display fields the catalog views render.
type Record struct {
	Ref    BookRef `json:"ref"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   string  `json:"year"`
	Genre  string  `json:"genre"`
	Image  string  `json:"image"`
}

// NewLocalRecord builds a record for a book with no server identity. Its ref
// is derived from the title, so records with equal titles are the same book.
func NewLocalRecord(title, author, year, genre, image string) Record {
	return Record{
		Ref:    LocalRef(title),
		Title:  title,
		Author: author,
		Year:   year,
		Genre:  genre,
		Image:  image,
	}
}

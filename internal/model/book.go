package model

type Book struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Genre           string   `json:"genre"`
	PublicationDate string   `json:"publicationDate"`
	PublishedDate   int64    `json:"publishedDate"`
	OwnerEmail      string   `json:"ownerEmail"`
	Reviews         []string `json:"reviews"`
}

// BookPatch holds the caller-editable fields; nil fields are left untouched.
type BookPatch struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Genre           *string `json:"genre"`
	PublicationDate *string `json:"publicationDate"`
}

func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Genre == nil && p.PublicationDate == nil
}

// Apply copies the set fields of p onto b.
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.PublicationDate != nil {
		b.PublicationDate = *p.PublicationDate
	}
}

type BookOrder int

const (
	BookOrderOldest BookOrder = iota
	BookOrderNewest
)

// BookFilter selects books for listing. Non-empty fields are ANDed; Search
// matches title, author or genre.
type BookFilter struct {
	Search          string
	Genre           string
	PublicationYear string
	Order           BookOrder
	Limit           uint
}

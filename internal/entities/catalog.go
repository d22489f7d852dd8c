package entities

import (
	"time"

	"gorm.io/gorm"
)

// Genre groups books and authors under a unique name.
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Books     []Book    `gorm:"foreignKey:GenreID" json:"books,omitempty"`
	Authors   []Author  `gorm:"foreignKey:GenreID" json:"authors,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Author struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"index;size:256" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Image       string    `gorm:"size:1024;default:'/writer.jpg'" json:"image"`
	GenreID     uint      `gorm:"index" json:"genre_id"`
	Genre       Genre     `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	Books       []Book    `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Book belongs to exactly one Author and one Genre.
// Year is stored as text, matching the catalog import format.
type Book struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"index;size:512;not null" json:"title"`
	Year        string  `gorm:"size:10;not null" json:"year"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Image       string  `gorm:"size:1024;default:'/placeholder-book.jpg'" json:"image"`
	Pages       int     `gorm:"default:320" json:"pages"`
	Language    string  `gorm:"size:50;default:'English'" json:"language"`
	Rating      float64 `gorm:"default:4.0" json:"rating"`
	RatingCount int     `gorm:"default:0" json:"rating_count"`

	AuthorID uint   `gorm:"index;not null" json:"author_id"`
	GenreID  uint   `gorm:"index;not null" json:"genre_id"`
	Author   Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genre    Genre  `gorm:"foreignKey:GenreID" json:"genre,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Favorite is the user-book join row. The composite unique index is the
// authoritative duplicate guard: two concurrent adds for the same pair can
// both pass the application-level existence check, but only one insert
// survives the constraint.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;uniqueIndex:idx_user_book;not null" json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_user_book;not null" json:"book_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Package books provides database operations for catalog book management.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(7)
package books

import (
	"time"

	"gorm.io/gorm"

	"github.com/adilibs/adilibs/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllBooks returns every book with its author and genre loaded.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Preload("Genre").Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book with its author and genre loaded.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Genre").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook inserts a new book row.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// UpdateBook applies the given column updates and returns the refreshed row.
func (r *Repository) UpdateBook(id uint, updates map[string]any) (*entities.Book, error) {
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetBookByID(id)
}

// DeleteBook removes a book by ID.
func (r *Repository) DeleteBook(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetBooksAddedSince returns books created after the given time, newest first.
// Used by the new-releases digest.
func (r *Repository) GetBooksAddedSince(since time.Time) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Preload("Genre").
		Where("created_at > ?", since).
		Order("created_at DESC").
		Find(&books).Error
	return books, err
}

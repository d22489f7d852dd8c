// Package authors provides database operations for author management.
package authors

import (
	"gorm.io/gorm"

	"github.com/adilibs/adilibs/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllAuthors returns every author with their genre loaded.
func (r *Repository) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Preload("Genre").Find(&authors).Error
	return authors, err
}

// GetAuthorByID retrieves an author with genre and books (each with its
// genre) loaded, matching the expanded detail representation.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Preload("Genre").Preload("Books").Preload("Books.Genre").First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// CreateAuthor inserts a new author row.
func (r *Repository) CreateAuthor(author *entities.Author) error {
	return r.db.Create(author).Error
}

// UpdateAuthor applies the given column updates and returns the refreshed row.
func (r *Repository) UpdateAuthor(id uint, updates map[string]any) (*entities.Author, error) {
	result := r.db.Model(&entities.Author{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetAuthorByID(id)
}

// DeleteAuthor removes an author by ID.
func (r *Repository) DeleteAuthor(id uint) error {
	result := r.db.Delete(&entities.Author{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Package favorites provides database operations for user favorite-book
// associations.
//
// This package implements the FavoritesStore interface defined in
// internal/http/favorites.go.
//
// # Interface Implementation
//
//	var _ http.FavoritesStore = (*Repository)(nil)
//
// # Usage
//
//	repo := favorites.NewRepository(db)
//	favs, err := repo.ListByUser(userID)
//
// Duplicate prevention is two-layered: an existence check gives the common
// case a clean error without touching the unique index, and the composite
// (user_id, book_id) unique index closes the window between two concurrent
// adds that both pass the check. A constraint violation is reported as
// ErrAlreadyFavorite, same as the pre-check.
package favorites

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/adilibs/adilibs/internal/entities"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrAlreadyFavorite = errors.New("book already in favorites")
	ErrNotFavorite     = errors.New("book not found in favorites")
)

// Repository handles all favorites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favorites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns the user's favorites in insertion order, each with the
// book's author and genre loaded.
func (r *Repository) ListByUser(userID uint) ([]entities.Favorite, error) {
	var favs []entities.Favorite
	err := r.db.Preload("Book").Preload("Book.Author").Preload("Book.Genre").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favs).Error
	return favs, err
}

// Add creates a favorite for the (user, book) pair and returns its ID.
// Returns ErrBookNotFound if the book does not exist and ErrAlreadyFavorite
// if the pair is already favorited, whether caught by the existence check or
// by the unique index.
func (r *Repository) Add(userID, bookID uint) (uint, error) {
	var book entities.Book
	if err := r.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrBookNotFound
		}
		return 0, err
	}

	var existing entities.Favorite
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
	if err == nil {
		return 0, ErrAlreadyFavorite
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	fav := entities.Favorite{UserID: userID, BookID: bookID}
	if err := r.db.Create(&fav).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the race against a concurrent add for the same pair.
			return 0, ErrAlreadyFavorite
		}
		return 0, err
	}

	return fav.ID, nil
}

// Remove deletes the favorite for the (user, book) pair.
// Returns ErrNotFavorite if no such favorite exists.
func (r *Repository) Remove(userID, bookID uint) error {
	result := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&entities.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFavorite
	}
	return nil
}

// RemoveAll deletes every favorite for the user and returns the count.
// A user with no favorites deletes zero rows and is not an error.
func (r *Repository) RemoveAll(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.Favorite{})
	return result.RowsAffected, result.Error
}

// isUniqueViolation reports whether err is a sqlite unique-index violation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adilibs/adilibs/internal/database/favorites"
	"github.com/adilibs/adilibs/internal/entities"
)

// FavoritesStore defines database operations for favorites management.
type FavoritesStore interface {
	ListByUser(userID uint) ([]entities.Favorite, error)
	Add(userID, bookID uint) (uint, error)
	Remove(userID, bookID uint) error
	RemoveAll(userID uint) (int64, error)
}

type FavoritesController struct {
	store FavoritesStore
}

func NewFavoritesController(store FavoritesStore) *FavoritesController {
	return &FavoritesController{store: store}
}

type addFavoriteRequest struct {
	BookID uint `json:"bookId"`
}

// ListFavorites returns the caller's favorites as expanded book records.
// GET /api/favorites
func (fc *FavoritesController) ListFavorites(c *gin.Context) {
	favs, err := fc.store.ListByUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list favorites")
		return
	}

	books := make([]BookResponse, 0, len(favs))
	for _, fav := range favs {
		books = append(books, formatBook(fav.Book))
	}

	c.JSON(http.StatusOK, books)
}

// AddFavorite adds a book to the caller's favorites.
// POST /api/favorites
func (fc *FavoritesController) AddFavorite(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 {
		respondBadRequest(c, "Book ID is required")
		return
	}

	userID := GetUserID(c)
	favoriteID, err := fc.store.Add(userID, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, favorites.ErrBookNotFound):
			respondNotFound(c, "Book not found")
		case errors.Is(err, favorites.ErrAlreadyFavorite):
			respondBadRequest(c, "Book already in favorites")
		default:
			respondInternalError(c, err, "add favorite")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Book added to favorites",
		"favoriteId": favoriteID,
		"bookId":     req.BookID,
		"userId":     userID,
	})
}

// RemoveFavorite removes one book from the caller's favorites.
// DELETE /api/favorites/:id
func (fc *FavoritesController) RemoveFavorite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := fc.store.Remove(GetUserID(c), bookID); err != nil {
		if errors.Is(err, favorites.ErrNotFavorite) {
			respondNotFound(c, "Book not found in favorites")
			return
		}
		respondInternalError(c, err, "remove favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Book removed from favorites",
		"bookId":  bookID,
	})
}

// RemoveAllFavorites clears the caller's favorites. Always succeeds, even
// when there was nothing to remove.
// DELETE /api/favorites/all
func (fc *FavoritesController) RemoveAllFavorites(c *gin.Context) {
	count, err := fc.store.RemoveAll(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "remove all favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All favorites removed successfully",
		"count":   count,
	})
}

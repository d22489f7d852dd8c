package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adilibs/adilibs/internal/entities"
)

// BooksStore defines database operations for catalog book management.
type BooksStore interface {
	GetAllBooks() ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	CreateBook(book *entities.Book) error
	UpdateBook(id uint, updates map[string]any) (*entities.Book, error)
	DeleteBook(id uint) error
}

type BooksController struct {
	store BooksStore
}

func NewBooksController(store BooksStore) *BooksController {
	return &BooksController{store: store}
}

type createBookRequest struct {
	Title       string `json:"title" binding:"required"`
	AuthorID    uint   `json:"authorId" binding:"required"`
	GenreID     uint   `json:"genreId" binding:"required"`
	Year        string `json:"year" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Pages       int    `json:"pages"`
	Language    string `json:"language"`
}

type updateBookRequest struct {
	Title       *string  `json:"title"`
	AuthorID    *uint    `json:"authorId"`
	GenreID     *uint    `json:"genreId"`
	Year        *string  `json:"year"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Pages       *int     `json:"pages"`
	Language    *string  `json:"language"`
	Rating      *float64 `json:"rating"`
	RatingCount *int     `json:"ratingCount"`
}

// ListBooks returns the whole catalog, expanded.
// GET /api/books
func (bc *BooksController) ListBooks(c *gin.Context) {
	books, err := bc.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	formatted := make([]BookResponse, 0, len(books))
	for _, book := range books {
		formatted = append(formatted, formatBook(book))
	}

	c.JSON(http.StatusOK, formatted)
}

// GetBook returns one book with author and genre IDs for navigation.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book not found")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, formatBookDetail(*book))
}

// CreateBook adds a catalog book. Admin only.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title, authorId, genreId and year are required")
		return
	}

	book := &entities.Book{
		Title:       req.Title,
		AuthorID:    req.AuthorID,
		GenreID:     req.GenreID,
		Year:        req.Year,
		Description: req.Description,
		Image:       req.Image,
		Pages:       req.Pages,
		Language:    req.Language,
	}
	if err := bc.store.CreateBook(book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	c.JSON(http.StatusCreated, book)
}

// UpdateBook applies a partial update. Admin only.
// PUT /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updates := map[string]any{}
	setIfPresent(updates, "title", req.Title)
	setIfPresent(updates, "author_id", req.AuthorID)
	setIfPresent(updates, "genre_id", req.GenreID)
	setIfPresent(updates, "year", req.Year)
	setIfPresent(updates, "description", req.Description)
	setIfPresent(updates, "image", req.Image)
	setIfPresent(updates, "pages", req.Pages)
	setIfPresent(updates, "language", req.Language)
	setIfPresent(updates, "rating", req.Rating)
	setIfPresent(updates, "rating_count", req.RatingCount)

	book, err := bc.store.UpdateBook(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book not found")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	c.JSON(http.StatusOK, formatBookDetail(*book))
}

// DeleteBook removes a catalog book. Admin only.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.DeleteBook(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Book not found")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Book deleted successfully"})
}

// setIfPresent adds a column update for non-nil pointer fields.
func setIfPresent[T any](updates map[string]any, column string, value *T) {
	if value != nil {
		updates[column] = *value
	}
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adilibs/adilibs/internal/entities"
)

// AuthorsStore defines database operations for author management.
type AuthorsStore interface {
	GetAllAuthors() ([]entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
	CreateAuthor(author *entities.Author) error
	UpdateAuthor(id uint, updates map[string]any) (*entities.Author, error)
	DeleteAuthor(id uint) error
}

type AuthorsController struct {
	store AuthorsStore
}

func NewAuthorsController(store AuthorsStore) *AuthorsController {
	return &AuthorsController{store: store}
}

type createAuthorRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	GenreID     uint   `json:"genreId" binding:"required"`
}

type updateAuthorRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	GenreID     *uint   `json:"genreId"`
}

// ListAuthors returns all authors with their genre.
// GET /api/authors
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	authors, err := ac.store.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GetAuthor returns one author with genre and books.
// GET /api/authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Author not found")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	c.JSON(http.StatusOK, author)
}

// CreateAuthor adds an author. Admin only.
// POST /api/authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name and genreId are required")
		return
	}

	author := &entities.Author{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		GenreID:     req.GenreID,
	}
	if err := ac.store.CreateAuthor(author); err != nil {
		respondInternalError(c, err, "create author")
		return
	}

	c.JSON(http.StatusCreated, author)
}

// UpdateAuthor applies a partial update. Admin only.
// PUT /api/authors/:id
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updates := map[string]any{}
	setIfPresent(updates, "name", req.Name)
	setIfPresent(updates, "description", req.Description)
	setIfPresent(updates, "image", req.Image)
	setIfPresent(updates, "genre_id", req.GenreID)

	author, err := ac.store.UpdateAuthor(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Author not found")
			return
		}
		respondInternalError(c, err, "update author")
		return
	}

	c.JSON(http.StatusOK, author)
}

// DeleteAuthor removes an author. Admin only.
// DELETE /api/authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ac.store.DeleteAuthor(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Author not found")
			return
		}
		respondInternalError(c, err, "delete author")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Author deleted successfully"})
}

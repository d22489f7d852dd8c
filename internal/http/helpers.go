package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adilibs/adilibs/internal/auth"
	"github.com/adilibs/adilibs/internal/entities"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 when the request is unauthenticated.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Response Types ---

// MessageResponse is the standard envelope for error and status responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// BookResponse is the expanded book representation: author and genre are
// flattened to their names, matching what the catalog views consume.
type BookResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	AuthorID    uint    `json:"authorId,omitempty"`
	Year        string  `json:"year"`
	Genre       string  `json:"genre"`
	GenreID     uint    `json:"genreId,omitempty"`
	Image       string  `json:"image"`
	Pages       int     `json:"pages"`
	Language    string  `json:"language"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
}

// formatBook flattens a book row into the list representation.
func formatBook(book entities.Book) BookResponse {
	return BookResponse{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author.Name,
		Year:        book.Year,
		Genre:       book.Genre.Name,
		Image:       book.Image,
		Pages:       book.Pages,
		Language:    book.Language,
		Description: book.Description,
		Rating:      book.Rating,
		RatingCount: book.RatingCount,
	}
}

// formatBookDetail is the detail representation, which additionally carries
// the author and genre IDs for navigation.
func formatBookDetail(book entities.Book) BookResponse {
	resp := formatBook(book)
	resp.AuthorID = book.Author.ID
	resp.GenreID = book.Genre.ID
	return resp
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, MessageResponse{Message: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, MessageResponse{Message: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Server error"})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns 0, false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

package favstore

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the bearer token was missing, expired or rejected
var ErrUnauthorized = errors.New("favorites API rejected the token")

// ErrBookNotFound indicates the referenced book does not exist on the server
var ErrBookNotFound = errors.New("book not found")

// ErrDuplicate indicates the book is already in the favorites list
var ErrDuplicate = errors.New("book already in favorites")

// ErrNotFavorite indicates the book is not in the favorites list
var ErrNotFavorite = errors.New("book is not a favorite")

// ServerError represents a 5xx error from the favorites API
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("favorites server error: HTTP %d", e.StatusCode)
}

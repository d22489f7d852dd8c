package favstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client interfaces with the server-side favorites API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a favorites API client for the given server and bearer
// token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// FavoriteBook is a favorited book as returned by the server, with author
// and genre flattened to their names.
type FavoriteBook struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Year        string  `json:"year"`
	Genre       string  `json:"genre"`
	Image       string  `json:"image"`
	Pages       int     `json:"pages"`
	Language    string  `json:"language"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
}

type addFavoritePayload struct {
	BookID uint `json:"bookId"`
}

// List fetches the caller's favorites from the server.
func (c *Client) List(ctx context.Context) ([]FavoriteBook, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/favorites", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var books []FavoriteBook
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return books, nil
}

// Add marks a catalog book as a favorite.
func (c *Client) Add(ctx context.Context, bookID uint) error {
	body, err := json.Marshal(addFavoritePayload{BookID: bookID})
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/favorites", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusBadRequest:
		return ErrDuplicate
	case http.StatusNotFound:
		return ErrBookNotFound
	default:
		return c.checkStatus(resp, http.StatusCreated)
	}
}

// Remove unmarks a catalog book.
func (c *Client) Remove(ctx context.Context, bookID uint) error {
	path := fmt.Sprintf("/api/favorites/%d", bookID)
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFavorite
	}
	return c.checkStatus(resp, http.StatusOK)
}

// RemoveAll clears the caller's entire favorites list.
func (c *Client) RemoveAll(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/favorites/all", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.checkStatus(resp, http.StatusOK)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// checkStatus maps common response codes to sentinel errors. The response
// body is consumed on failure so the connection can be reused.
func (c *Client) checkStatus(resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 500 {
		return &ServerError{StatusCode: resp.StatusCode}
	}

	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
}

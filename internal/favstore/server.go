package favstore

import (
	"context"
	"fmt"
	"strconv"
)

// serverBackend keeps favorites on the server through the API client. Every
// mutation is followed by a full re-fetch so the store mirrors exactly what
// the server holds, including changes made from other sessions.
type serverBackend struct {
	client *Client
}

func newServerBackend(client *Client) *serverBackend {
	return &serverBackend{client: client}
}

func (b *serverBackend) load(ctx context.Context) ([]Record, error) {
	books, err := b.client.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(books))
	for _, book := range books {
		records = append(records, Record{
			Ref:    CatalogRef(book.ID),
			Title:  book.Title,
			Author: book.Author,
			Year:   book.Year,
			Genre:  book.Genre,
			Image:  book.Image,
		})
	}
	return records, nil
}

func (b *serverBackend) add(ctx context.Context, rec Record, _ []Record) ([]Record, error) {
	bookID, err := catalogID(rec.Ref)
	if err != nil {
		return nil, err
	}
	if err := b.client.Add(ctx, bookID); err != nil {
		return nil, err
	}
	return b.load(ctx)
}

func (b *serverBackend) remove(ctx context.Context, ref BookRef, _ []Record) ([]Record, error) {
	bookID, err := catalogID(ref)
	if err != nil {
		return nil, err
	}
	if err := b.client.Remove(ctx, bookID); err != nil {
		return nil, err
	}
	return b.load(ctx)
}

func (b *serverBackend) removeAll(ctx context.Context, _ []Record) ([]Record, error) {
	if err := b.client.RemoveAll(ctx); err != nil {
		return nil, err
	}
	return b.load(ctx)
}

// catalogID extracts the server book ID from a ref. Only catalog refs can be
// sent to the server.
func catalogID(ref BookRef) (uint, error) {
	if ref.Source != SourceCatalog {
		return 0, fmt.Errorf("ref %s has no catalog identity", ref)
	}
	id, err := strconv.ParseUint(ref.ID, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed catalog ref %s: %w", ref, err)
	}
	return uint(id), nil
}

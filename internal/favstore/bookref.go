package favstore

import (
	"fmt"
	"strings"
)

// Ref sources. Catalog refs carry a server-assigned book ID, external refs
// carry an identifier from a third-party catalog, and local refs identify
// books that exist only in an anonymous session.
const (
	SourceCatalog  = "catalog"
	SourceExternal = "external"
	SourceLocal    = "local"
)

// BookRef is the canonical identity of a favorited book. Two records are
// the same book if and only if their refs are equal.
type BookRef struct {
	Source string `json:"source"`
	ID     string `json:"id"`
}

// CatalogRef builds a ref for a book stored in the server catalog.
func CatalogRef(bookID uint) BookRef {
	return BookRef{Source: SourceCatalog, ID: fmt.Sprintf("%d", bookID)}
}

// ExternalRef builds a ref for a book identified by a third-party catalog.
func ExternalRef(source, id string) BookRef {
	return BookRef{Source: SourceExternal, ID: source + ":" + id}
}

// LocalRef builds a ref for a book known only by its title. The title is
// normalized so that case and spacing differences collapse to one ref.
func LocalRef(title string) BookRef {
	return BookRef{Source: SourceLocal, ID: normalizeTitle(title)}
}

// IsZero reports whether the ref carries no identity.
func (r BookRef) IsZero() bool {
	return r.Source == "" && r.ID == ""
}

func (r BookRef) String() string {
	return r.Source + "/" + r.ID
}

// normalizeTitle lowercases the title and collapses runs of whitespace.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

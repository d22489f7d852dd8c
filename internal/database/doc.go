// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, genre seeding
//	├── seed.go          # Starter catalog data set
//	├── books/           # Book CRUD and expanded catalog reads
//	├── authors/         # Author CRUD
//	├── users/           # User management
//	├── favorites/       # User favorite-book associations
//	└── subscribers/     # Telegram newsletter subscribers
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./adilibs.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	favRepo := favorites.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetBookByID(123)
//	favs, err := favRepo.ListByUser(userID)
//
// # Interface Implementations
//
// The repositories implement the store interfaces declared next to the HTTP
// controllers that consume them, e.g.:
//
//   - books.Repository: implements http.BooksStore
//   - authors.Repository: implements http.AuthorsStore
//   - favorites.Repository: implements http.FavoritesStore
//   - subscribers.Repository: implements http.SubscribersStore
//
// # Adding a New Domain
//
// To add a new domain:
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database

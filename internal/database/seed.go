package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/adilibs/adilibs/internal/entities"
)

type seedBook struct {
	Title  string
	Author string
	Year   string
	Genre  string
	Image  string
}

// starterBooks is the catalog the app ships with. Descriptions are derived
// from the row, same as the original seed data set.
var starterBooks = []seedBook{
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: "1937", Genre: "Fantasy", Image: "/covers/the-hobbit.jpg"},
	{Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", Year: "1954", Genre: "Fantasy", Image: "/covers/fellowship.jpg"},
	{Title: "Dune", Author: "Frank Herbert", Year: "1965", Genre: "Science Fiction", Image: "/covers/dune.jpg"},
	{Title: "Foundation", Author: "Isaac Asimov", Year: "1951", Genre: "Science Fiction", Image: "/covers/foundation.jpg"},
	{Title: "I, Robot", Author: "Isaac Asimov", Year: "1950", Genre: "Science Fiction", Image: "/covers/i-robot.jpg"},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Year: "1813", Genre: "Classic", Image: "/covers/pride-and-prejudice.jpg"},
	{Title: "Emma", Author: "Jane Austen", Year: "1815", Genre: "Classic", Image: "/covers/emma.jpg"},
	{Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Year: "1866", Genre: "Classic", Image: "/covers/crime-and-punishment.jpg"},
	{Title: "The Brothers Karamazov", Author: "Fyodor Dostoevsky", Year: "1880", Genre: "Classic", Image: "/covers/brothers-karamazov.jpg"},
	{Title: "Murder on the Orient Express", Author: "Agatha Christie", Year: "1934", Genre: "Mystery", Image: "/covers/orient-express.jpg"},
	{Title: "And Then There Were None", Author: "Agatha Christie", Year: "1939", Genre: "Mystery", Image: "/covers/and-then-there-were-none.jpg"},
	{Title: "The Diary of a Young Girl", Author: "Anne Frank", Year: "1947", Genre: "Biography", Image: "/covers/diary-young-girl.jpg"},
	{Title: "A Short History of Nearly Everything", Author: "Bill Bryson", Year: "2003", Genre: "History", Image: "/covers/short-history.jpg"},
	{Title: "Atomic Habits", Author: "James Clear", Year: "2018", Genre: "Self-Development", Image: "/covers/atomic-habits.jpg"},
	{Title: "Jane Eyre", Author: "Charlotte Brontë", Year: "1847", Genre: "Romance", Image: "/covers/jane-eyre.jpg"},
}

// SeedCatalog populates genres, authors and books from the starter data set,
// plus an admin account. Safe to run repeatedly: existing rows are reused.
func (d *Database) SeedCatalog(adminPasswordHash string) error {
	// Admin account
	var admin entities.User
	err := d.DB.Where("username = ?", "admin").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		admin = entities.User{
			Username:     "admin",
			Email:        "admin@adilibs.com",
			PasswordHash: adminPasswordHash,
			IsAdmin:      true,
		}
		if err := d.DB.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Printf("Created admin user")
	} else if err != nil {
		return err
	}

	for _, row := range starterBooks {
		genre, err := d.getOrCreateGenre(row.Genre)
		if err != nil {
			return err
		}
		author, err := d.getOrCreateAuthor(row.Author, genre)
		if err != nil {
			return err
		}

		var existing entities.Book
		err = d.DB.Where("title = ? AND author_id = ?", row.Title, author.ID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		book := entities.Book{
			Title:    row.Title,
			Year:     row.Year,
			Image:    row.Image,
			AuthorID: author.ID,
			GenreID:  genre.ID,
			Description: fmt.Sprintf("%s is a %s book written by %s and published in %s.",
				row.Title, strings.ToLower(row.Genre), row.Author, row.Year),
		}
		if err := d.DB.Create(&book).Error; err != nil {
			return fmt.Errorf("failed to create book %s: %w", row.Title, err)
		}
	}

	log.Printf("Catalog seeded with %d starter books", len(starterBooks))
	return nil
}

func (d *Database) getOrCreateGenre(name string) (*entities.Genre, error) {
	genre, err := d.GetGenreByName(name)
	if err == nil {
		return genre, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	created := entities.Genre{Name: name}
	if err := d.DB.Create(&created).Error; err != nil {
		return nil, fmt.Errorf("failed to create genre %s: %w", name, err)
	}
	return &created, nil
}

func (d *Database) getOrCreateAuthor(name string, genre *entities.Genre) (*entities.Author, error) {
	var author entities.Author
	err := d.DB.Where("name = ?", name).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	author = entities.Author{
		Name:        name,
		Description: fmt.Sprintf("%s is a renowned author known for works in the %s genre.", name, genre.Name),
		GenreID:     genre.ID,
	}
	if err := d.DB.Create(&author).Error; err != nil {
		return nil, fmt.Errorf("failed to create author %s: %w", name, err)
	}
	return &author, nil
}

package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adilibs/adilibs/internal/entities"
)

var defaultGenres = []entities.Genre{
	{Name: "Fantasy"},
	{Name: "Science Fiction"},
	{Name: "Classic"},
	{Name: "Mystery"},
	{Name: "Romance"},
	{Name: "Biography"},
	{Name: "History"},
	{Name: "Self-Development"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Genre{},
		&entities.Author{},
		&entities.Book{},
		&entities.User{},
		&entities.Favorite{},
		&entities.TelegramSubscriber{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	// Seed default genres
	if err := database.seedGenres(); err != nil {
		return nil, fmt.Errorf("failed to seed genres: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedGenres() error {
	for _, genre := range defaultGenres {
		var existing entities.Genre
		result := d.DB.Where("name = ?", genre.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&genre).Error; err != nil {
				return fmt.Errorf("failed to create genre %s: %w", genre.Name, err)
			}
		}
	}
	return nil
}

func (d *Database) GetGenreByName(name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := d.DB.Where("name = ?", name).First(&genre).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (d *Database) GetAllGenres() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := d.DB.Find(&genres).Error
	return genres, err
}

package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/adilibs/adilibs/internal/auth"
	"github.com/adilibs/adilibs/internal/config"
	"github.com/adilibs/adilibs/internal/database"
)

// SeedCommand populates the catalog with the starter books, authors and
// genres, and creates the administrator account.
type SeedCommand struct {
	DatabasePath  string
	AdminPassword string
	BcryptCost    int
}

// NewSeedCommand creates a new SeedCommand
func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

// ParseFlags parses command line flags
func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file to seed")
	fs.StringVar(&cmd.AdminPassword, "admin-password", "", "Password for the administrator account (required)")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 10, "Bcrypt cost used to hash the administrator password")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate the catalog with starter books, authors and genres, and create\n")
		fmt.Fprintf(os.Stderr, "the administrator account. Already-seeded entries are left untouched, so\n")
		fmt.Fprintf(os.Stderr, "the command is safe to run more than once.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -admin-password s3cret\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -db /data/adilibs.db -admin-password s3cret\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.AdminPassword == "" {
		fs.Usage()
		return fmt.Errorf("-admin-password is required")
	}

	return nil
}

// Run executes the seeding
func (cmd *SeedCommand) Run() error {
	hash, err := auth.HashPassword(cmd.AdminPassword, cmd.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SeedCatalog(hash); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	fmt.Printf("Seeded catalog at %s\n", cmd.DatabasePath)
	return nil
}

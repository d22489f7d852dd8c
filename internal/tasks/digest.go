package tasks

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/adilibs/adilibs/internal/entities"
)

// RecentBooksLister provides the catalog additions a digest is built from.
type RecentBooksLister interface {
	GetBooksAddedSince(since time.Time) ([]entities.Book, error)
}

// DigestSubscriberStore provides the audience for new-release digests.
type DigestSubscriberStore interface {
	GetNewReleaseSubscribers() ([]entities.TelegramSubscriber, error)
	RecordDelivery(subscriberID uint) error
}

// NewReleasesDigestTask sends each new-release subscriber a summary of books
// added to the catalog since the given time. Subscribers with preferred
// genres only receive books from those genres.
type NewReleasesDigestTask struct {
	Since time.Time `json:"since"`
}

// Config returns the queue configuration for digest tasks.
func (t NewReleasesDigestTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "new_releases_digest",
		MaxAttempts: 3,
		Backoff:     10 * time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// NewReleasesDigestProcessor creates a processor function for NewReleasesDigestTask.
func NewReleasesDigestProcessor(books RecentBooksLister, store DigestSubscriberStore, sender Sender) backlite.QueueProcessor[NewReleasesDigestTask] {
	return func(ctx context.Context, task NewReleasesDigestTask) error {
		if sender == nil {
			return fmt.Errorf("message sender not configured")
		}

		added, err := books.GetBooksAddedSince(task.Since)
		if err != nil {
			return fmt.Errorf("load recent books: %w", err)
		}
		if len(added) == 0 {
			log.Printf("[TASK] No new releases since %s, skipping digest", task.Since.Format(time.RFC3339))
			return nil
		}

		subscribers, err := store.GetNewReleaseSubscribers()
		if err != nil {
			return fmt.Errorf("load subscribers: %w", err)
		}

		delivered := 0
		for _, sub := range subscribers {
			if sub.ChatID == nil {
				continue
			}

			text := composeDigest(added, sub.GenreList())
			if text == "" {
				continue
			}

			if err := sender.Send(ctx, *sub.ChatID, text); err != nil {
				log.Printf("[TASK] Digest delivery to chat %s failed: %v", *sub.ChatID, err)
				continue
			}
			if err := store.RecordDelivery(sub.ID); err != nil {
				log.Printf("[TASK] Failed to record delivery for subscriber %d: %v", sub.ID, err)
			}
			delivered++
		}

		log.Printf("[TASK] Digest of %d new releases delivered to %d subscribers", len(added), delivered)
		return nil
	}
}

// NewReleasesDigestQueue creates a backlite queue for digest tasks.
func NewReleasesDigestQueue(books RecentBooksLister, store DigestSubscriberStore, sender Sender) backlite.Queue {
	return backlite.NewQueue(NewReleasesDigestProcessor(books, store, sender))
}

// composeDigest renders the digest text for one subscriber. Returns "" when
// the genre filter leaves nothing to announce.
func composeDigest(books []entities.Book, preferredGenres []string) string {
	wanted := make(map[string]bool, len(preferredGenres))
	for _, g := range preferredGenres {
		wanted[strings.ToLower(strings.TrimSpace(g))] = true
	}

	var lines []string
	for _, book := range books {
		if len(wanted) > 0 && !wanted[strings.ToLower(book.Genre.Name)] {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s by %s (%s)", book.Title, book.Author.Name, book.Genre.Name))
	}
	if len(lines) == 0 {
		return ""
	}

	return "New on AdiLibs:\n" + strings.Join(lines, "\n")
}

package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilibs/adilibs/internal/entities"
)

type fakeSubscriberStore struct {
	subs       []entities.TelegramSubscriber
	deliveries []uint
}

func (f *fakeSubscriberStore) GetActiveSubscribers() ([]entities.TelegramSubscriber, error) {
	return f.subs, nil
}

func (f *fakeSubscriberStore) GetNewReleaseSubscribers() ([]entities.TelegramSubscriber, error) {
	return f.subs, nil
}

func (f *fakeSubscriberStore) RecordDelivery(id uint) error {
	f.deliveries = append(f.deliveries, id)
	return nil
}

type fakeSender struct {
	sent    map[string][]string
	failFor string
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(map[string][]string)}
}

func (f *fakeSender) Send(_ context.Context, chatID, text string) error {
	if chatID == f.failFor {
		return errors.New("chat unreachable")
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func subscriber(id uint, chatID string) entities.TelegramSubscriber {
	sub := entities.TelegramSubscriber{ID: id, IsActive: true}
	if chatID != "" {
		sub.ChatID = &chatID
	}
	return sub
}

func TestBroadcastMessageProcessor(t *testing.T) {
	t.Run("delivers to every subscriber with a chat", func(t *testing.T) {
		store := &fakeSubscriberStore{subs: []entities.TelegramSubscriber{
			subscriber(1, "100"),
			subscriber(2, "200"),
			subscriber(3, ""), // registered by handle only, nothing to deliver to
		}}
		sender := newFakeSender()

		process := BroadcastMessageProcessor(store, sender)
		err := process(context.Background(), BroadcastMessageTask{Message: "hello"})
		require.NoError(t, err)

		assert.Equal(t, []string{"hello"}, sender.sent["100"])
		assert.Equal(t, []string{"hello"}, sender.sent["200"])
		assert.Equal(t, []uint{1, 2}, store.deliveries)
	})

	t.Run("one dead chat does not fail the broadcast", func(t *testing.T) {
		store := &fakeSubscriberStore{subs: []entities.TelegramSubscriber{
			subscriber(1, "100"),
			subscriber(2, "200"),
		}}
		sender := newFakeSender()
		sender.failFor = "100"

		process := BroadcastMessageProcessor(store, sender)
		err := process(context.Background(), BroadcastMessageTask{Message: "hello"})
		require.NoError(t, err)

		assert.Empty(t, sender.sent["100"])
		assert.Equal(t, []string{"hello"}, sender.sent["200"])
		assert.Equal(t, []uint{2}, store.deliveries)
	})

	t.Run("fails without a sender", func(t *testing.T) {
		process := BroadcastMessageProcessor(&fakeSubscriberStore{}, nil)
		err := process(context.Background(), BroadcastMessageTask{Message: "hello"})
		assert.Error(t, err)
	})
}

type fakeBooksLister struct {
	books []entities.Book
}

func (f *fakeBooksLister) GetBooksAddedSince(time.Time) ([]entities.Book, error) {
	return f.books, nil
}

func bookWithGenre(title, author, genre string) entities.Book {
	return entities.Book{
		Title:  title,
		Author: entities.Author{Name: author},
		Genre:  entities.Genre{Name: genre},
	}
}

func TestNewReleasesDigestProcessor(t *testing.T) {
	t.Run("sends a digest filtered by preferred genres", func(t *testing.T) {
		books := &fakeBooksLister{books: []entities.Book{
			bookWithGenre("Dune", "Frank Herbert", "Science Fiction"),
			bookWithGenre("The Hobbit", "J.R.R. Tolkien", "Fantasy"),
		}}

		fantasyOnly := subscriber(1, "100")
		fantasyOnly.SetGenreList([]string{"Fantasy"})
		everything := subscriber(2, "200")
		store := &fakeSubscriberStore{subs: []entities.TelegramSubscriber{fantasyOnly, everything}}
		sender := newFakeSender()

		process := NewReleasesDigestProcessor(books, store, sender)
		err := process(context.Background(), NewReleasesDigestTask{Since: time.Now().Add(-24 * time.Hour)})
		require.NoError(t, err)

		require.Len(t, sender.sent["100"], 1)
		assert.Contains(t, sender.sent["100"][0], "The Hobbit")
		assert.NotContains(t, sender.sent["100"][0], "Dune")

		require.Len(t, sender.sent["200"], 1)
		assert.Contains(t, sender.sent["200"][0], "Dune")
		assert.Contains(t, sender.sent["200"][0], "The Hobbit")
	})

	t.Run("skips subscribers whose filter matches nothing", func(t *testing.T) {
		books := &fakeBooksLister{books: []entities.Book{
			bookWithGenre("Dune", "Frank Herbert", "Science Fiction"),
		}}

		sub := subscriber(1, "100")
		sub.SetGenreList([]string{"Romance"})
		store := &fakeSubscriberStore{subs: []entities.TelegramSubscriber{sub}}
		sender := newFakeSender()

		process := NewReleasesDigestProcessor(books, store, sender)
		err := process(context.Background(), NewReleasesDigestTask{Since: time.Now()})
		require.NoError(t, err)

		assert.Empty(t, sender.sent)
		assert.Empty(t, store.deliveries)
	})

	t.Run("does nothing when no books were added", func(t *testing.T) {
		store := &fakeSubscriberStore{subs: []entities.TelegramSubscriber{subscriber(1, "100")}}
		sender := newFakeSender()

		process := NewReleasesDigestProcessor(&fakeBooksLister{}, store, sender)
		err := process(context.Background(), NewReleasesDigestTask{Since: time.Now()})
		require.NoError(t, err)
		assert.Empty(t, sender.sent)
	})
}

func TestComposeDigest(t *testing.T) {
	books := []entities.Book{bookWithGenre("Dune", "Frank Herbert", "Science Fiction")}

	text := composeDigest(books, nil)
	assert.Contains(t, text, "New on AdiLibs:")
	assert.Contains(t, text, "- Dune by Frank Herbert (Science Fiction)")

	assert.Equal(t, "", composeDigest(books, []string{"Romance"}))
	assert.NotEqual(t, "", composeDigest(books, []string{" science fiction "}))
}

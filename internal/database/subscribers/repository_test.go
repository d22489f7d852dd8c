package subscribers

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilibs/adilibs/internal/database"
	"github.com/adilibs/adilibs/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()

	dbPath := "./test_subscribers_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func strPtr(s string) *string { return &s }

func TestRepository_Subscribe(t *testing.T) {
	t.Run("creates a new subscriber", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo := NewRepository(db.DB)
		sub, err := repo.Subscribe(&entities.TelegramSubscriber{
			Username:           strPtr("alice"),
			ChatID:             strPtr("12345"),
			ReceiveNewReleases: true,
		})
		require.NoError(t, err)
		assert.NotZero(t, sub.ID)
		assert.True(t, sub.IsActive)
	})

	t.Run("reactivates an unsubscribed chat in place", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo := NewRepository(db.DB)
		first, err := repo.Subscribe(&entities.TelegramSubscriber{ChatID: strPtr("12345")})
		require.NoError(t, err)
		require.NoError(t, repo.Unsubscribe("12345"))

		second, err := repo.Subscribe(&entities.TelegramSubscriber{ChatID: strPtr("12345")})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.IsActive)
	})

	t.Run("stores genre preferences", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		sub := &entities.TelegramSubscriber{ChatID: strPtr("12345")}
		sub.SetGenreList([]string{"Fantasy", "History"})

		repo := NewRepository(db.DB)
		saved, err := repo.Subscribe(sub)
		require.NoError(t, err)
		assert.Equal(t, []string{"Fantasy", "History"}, saved.GenreList())
	})
}

func TestRepository_Unsubscribe(t *testing.T) {
	t.Run("deactivates an active subscriber", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo := NewRepository(db.DB)
		_, err := repo.Subscribe(&entities.TelegramSubscriber{ChatID: strPtr("12345")})
		require.NoError(t, err)

		require.NoError(t, repo.Unsubscribe("12345"))

		active, err := repo.GetActiveSubscribers()
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("returns ErrSubscriberNotFound for an unknown chat", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		repo := NewRepository(db.DB)
		err := repo.Unsubscribe("99999")
		assert.ErrorIs(t, err, ErrSubscriberNotFound)
	})
}

func TestRepository_GetNewReleaseSubscribers(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db.DB)
	_, err := repo.Subscribe(&entities.TelegramSubscriber{ChatID: strPtr("1"), ReceiveNewReleases: true})
	require.NoError(t, err)
	optedOut, err := repo.Subscribe(&entities.TelegramSubscriber{ChatID: strPtr("2")})
	require.NoError(t, err)
	require.NoError(t, db.DB.Model(optedOut).Update("receive_new_releases", false).Error)

	subs, err := repo.GetNewReleaseSubscribers()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "1", *subs[0].ChatID)
}

func TestRepository_RecordDelivery(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db.DB)
	sub, err := repo.Subscribe(&entities.TelegramSubscriber{ChatID: strPtr("12345")})
	require.NoError(t, err)

	require.NoError(t, repo.RecordDelivery(sub.ID))
	require.NoError(t, repo.RecordDelivery(sub.ID))

	var got entities.TelegramSubscriber
	require.NoError(t, db.DB.First(&got, sub.ID).Error)
	assert.Equal(t, 2, got.TotalMessagesSent)
	assert.NotNil(t, got.LastMessageSentAt)
}

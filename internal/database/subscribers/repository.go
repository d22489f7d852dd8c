// Package subscribers provides database operations for Telegram newsletter
// subscribers.
package subscribers

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adilibs/adilibs/internal/entities"
)

var ErrSubscriberNotFound = errors.New("subscriber not found")

// Repository handles all subscriber database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new subscribers repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Subscribe registers a subscriber by username and/or chat ID. A previously
// unsubscribed record matching either identity is reactivated in place
// instead of creating a duplicate row.
func (r *Repository) Subscribe(sub *entities.TelegramSubscriber) (*entities.TelegramSubscriber, error) {
	existing, err := r.findByIdentity(sub.Username, sub.ChatID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()

	if existing != nil {
		updates := map[string]any{
			"is_active":            true,
			"subscribed_at":        now,
			"unsubscribed_at":      nil,
			"receive_promotions":   sub.ReceivePromotions,
			"receive_new_releases": sub.ReceiveNewReleases,
			"last_interaction_at":  now,
		}
		if sub.PreferredGenres != "" {
			updates["preferred_genres"] = sub.PreferredGenres
		}
		if sub.ChatID != nil {
			updates["chat_id"] = sub.ChatID
		}
		if err := r.db.Model(existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	sub.IsActive = true
	sub.SubscribedAt = now
	sub.LastInteractionAt = &now
	if err := r.db.Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe deactivates the subscriber with the given chat ID.
func (r *Repository) Unsubscribe(chatID string) error {
	now := time.Now()
	result := r.db.Model(&entities.TelegramSubscriber{}).
		Where("chat_id = ?", chatID).
		Updates(map[string]any{
			"is_active":       false,
			"unsubscribed_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}

// GetActiveSubscribers returns all active subscribers.
func (r *Repository) GetActiveSubscribers() ([]entities.TelegramSubscriber, error) {
	var subs []entities.TelegramSubscriber
	err := r.db.Where("is_active = ?", true).Find(&subs).Error
	return subs, err
}

// GetNewReleaseSubscribers returns active subscribers opted into
// new-release notifications.
func (r *Repository) GetNewReleaseSubscribers() ([]entities.TelegramSubscriber, error) {
	var subs []entities.TelegramSubscriber
	err := r.db.Where("is_active = ? AND receive_new_releases = ?", true, true).Find(&subs).Error
	return subs, err
}

// RecordDelivery updates the delivery tracking fields after a message is
// sent to the subscriber.
func (r *Repository) RecordDelivery(subscriberID uint) error {
	now := time.Now()
	return r.db.Model(&entities.TelegramSubscriber{}).
		Where("id = ?", subscriberID).
		Updates(map[string]any{
			"last_message_sent_at": now,
			"total_messages_sent":  gorm.Expr("total_messages_sent + 1"),
		}).Error
}

func (r *Repository) findByIdentity(username, chatID *string) (*entities.TelegramSubscriber, error) {
	query := r.db
	switch {
	case username != nil && chatID != nil:
		query = query.Where("username = ? OR chat_id = ?", *username, *chatID)
	case username != nil:
		query = query.Where("username = ?", *username)
	case chatID != nil:
		query = query.Where("chat_id = ?", *chatID)
	default:
		return nil, gorm.ErrRecordNotFound
	}

	var sub entities.TelegramSubscriber
	if err := query.First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

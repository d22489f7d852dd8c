package entities

import (
	"strings"
	"time"
)

// TelegramSubscriber tracks a newsletter subscription. Either Username or
// ChatID may be empty: users can register by handle before the bot has seen
// a chat from them.
type TelegramSubscriber struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Username  *string `gorm:"uniqueIndex;size:100" json:"username,omitempty"`
	ChatID    *string `gorm:"uniqueIndex;size:64" json:"chat_id,omitempty"`
	FirstName string  `gorm:"size:100" json:"first_name,omitempty"`
	LastName  string  `gorm:"size:100" json:"last_name,omitempty"`

	IsActive       bool       `gorm:"default:true" json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`

	ReceivePromotions  bool   `gorm:"default:true" json:"receive_promotions"`
	ReceiveNewReleases bool   `gorm:"default:true" json:"receive_new_releases"`
	PreferredGenres    string `gorm:"size:512" json:"-"` // comma-separated

	LastMessageSentAt *time.Time `json:"last_message_sent_at,omitempty"`
	TotalMessagesSent int        `gorm:"default:0" json:"total_messages_sent"`
	LastInteractionAt *time.Time `json:"last_interaction_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GenreList splits the stored comma-separated genre preference.
func (s *TelegramSubscriber) GenreList() []string {
	if s.PreferredGenres == "" {
		return nil
	}
	return strings.Split(s.PreferredGenres, ",")
}

// SetGenreList stores genre preferences as a comma-separated string.
func (s *TelegramSubscriber) SetGenreList(genres []string) {
	s.PreferredGenres = strings.Join(genres, ",")
}

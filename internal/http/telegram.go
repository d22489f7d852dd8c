package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adilibs/adilibs/internal/entities"
)

// SubscribersStore defines database operations for newsletter subscribers.
type SubscribersStore interface {
	Subscribe(sub *entities.TelegramSubscriber) (*entities.TelegramSubscriber, error)
	GetActiveSubscribers() ([]entities.TelegramSubscriber, error)
}

// BroadcastEnqueuer queues a broadcast for background delivery.
type BroadcastEnqueuer interface {
	EnqueueBroadcast(message string) error
}

type TelegramController struct {
	store    SubscribersStore
	enqueuer BroadcastEnqueuer
}

func NewTelegramController(store SubscribersStore, enqueuer BroadcastEnqueuer) *TelegramController {
	return &TelegramController{store: store, enqueuer: enqueuer}
}

type subscribeRequest struct {
	Username           string   `json:"username"`
	ChatID             string   `json:"chatId"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	ReceivePromotions  *bool    `json:"receivePromotions"`
	ReceiveNewReleases *bool    `json:"receiveNewReleases"`
	PreferredGenres    []string `json:"preferredGenres"`
}

type broadcastRequest struct {
	Message string `json:"message"`
}

// Subscribe registers (or reactivates) a newsletter subscriber.
// POST /api/telegram/subscribe
func (tc *TelegramController) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Username == "" && req.ChatID == "") {
		respondBadRequest(c, "Username or chat ID is required")
		return
	}

	sub := &entities.TelegramSubscriber{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		ReceivePromotions:  true,
		ReceiveNewReleases: true,
	}
	if req.Username != "" {
		sub.Username = &req.Username
	}
	if req.ChatID != "" {
		sub.ChatID = &req.ChatID
	}
	if req.ReceivePromotions != nil {
		sub.ReceivePromotions = *req.ReceivePromotions
	}
	if req.ReceiveNewReleases != nil {
		sub.ReceiveNewReleases = *req.ReceiveNewReleases
	}
	sub.SetGenreList(req.PreferredGenres)

	saved, err := tc.store.Subscribe(sub)
	if err != nil {
		respondInternalError(c, err, "subscribe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Subscribed successfully",
		"subscriber": saved,
	})
}

// Broadcast queues a message for delivery to every active subscriber.
// Admin only.
// POST /api/telegram/broadcast
func (tc *TelegramController) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		respondBadRequest(c, "Message is required")
		return
	}

	if tc.enqueuer == nil {
		respondBadRequest(c, "Broadcast delivery is disabled")
		return
	}

	if err := tc.enqueuer.EnqueueBroadcast(req.Message); err != nil {
		respondInternalError(c, err, "enqueue broadcast")
		return
	}

	c.JSON(http.StatusAccepted, MessageResponse{Message: "Broadcast queued"})
}

package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/adilibs/adilibs/internal/entities"
)

// Sender delivers a message to a single chat. The production implementation
// talks to a messaging gateway; tests and local setups use LogSender.
type Sender interface {
	Send(ctx context.Context, chatID, text string) error
}

// SubscriberStore provides the subscriber lists a delivery task works from.
type SubscriberStore interface {
	GetActiveSubscribers() ([]entities.TelegramSubscriber, error)
	RecordDelivery(subscriberID uint) error
}

// BroadcastMessageTask delivers one message to every active subscriber.
type BroadcastMessageTask struct {
	Message string `json:"message"`
}

// Config returns the queue configuration for broadcast tasks.
func (t BroadcastMessageTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "broadcast_message",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// BroadcastMessageProcessor creates a processor function for BroadcastMessageTask.
// Delivery failures for individual subscribers are logged and skipped so one
// dead chat does not fail the whole broadcast.
func BroadcastMessageProcessor(store SubscriberStore, sender Sender) backlite.QueueProcessor[BroadcastMessageTask] {
	return func(ctx context.Context, task BroadcastMessageTask) error {
		if sender == nil {
			return fmt.Errorf("message sender not configured")
		}

		subscribers, err := store.GetActiveSubscribers()
		if err != nil {
			return fmt.Errorf("load subscribers: %w", err)
		}

		delivered := 0
		for _, sub := range subscribers {
			if sub.ChatID == nil {
				continue
			}
			if err := sender.Send(ctx, *sub.ChatID, task.Message); err != nil {
				log.Printf("[TASK] Broadcast delivery to chat %s failed: %v", *sub.ChatID, err)
				continue
			}
			if err := store.RecordDelivery(sub.ID); err != nil {
				log.Printf("[TASK] Failed to record delivery for subscriber %d: %v", sub.ID, err)
			}
			delivered++
		}

		log.Printf("[TASK] Broadcast delivered to %d of %d subscribers", delivered, len(subscribers))
		return nil
	}
}

// NewBroadcastMessageQueue creates a backlite queue for broadcast tasks.
func NewBroadcastMessageQueue(store SubscriberStore, sender Sender) backlite.Queue {
	return backlite.NewQueue(BroadcastMessageProcessor(store, sender))
}

// LogSender is a Sender that writes messages to the process log instead of
// delivering them. Used when no messaging gateway is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, chatID, text string) error {
	log.Printf("[SEND] chat=%s message=%q", chatID, text)
	return nil
}

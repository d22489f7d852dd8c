package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/adilibs/adilibs/internal/tasks"
)

// DigestConfig controls the new-releases digest schedule.
type DigestConfig struct {
	// Enabled turns the scheduler on.
	Enabled bool

	// Schedule is a five-field cron expression. Default: daily at 09:00.
	Schedule string

	// Window is how far back each digest looks for catalog additions.
	Window time.Duration
}

// DigestScheduler periodically enqueues a new-releases digest task covering
// the configured window.
type DigestScheduler struct {
	config DigestConfig
	tasks  *tasks.Client

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewDigestScheduler creates a new scheduler instance.
func NewDigestScheduler(cfg DigestConfig, taskClient *tasks.Client) *DigestScheduler {
	return &DigestScheduler{
		config: cfg,
		tasks:  taskClient,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if the digest is enabled.
func (s *DigestScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Digest scheduler: disabled")
		return nil
	}
	if s.tasks == nil {
		log.Printf("Digest scheduler: task queue not available, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.enqueueDigest()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Digest scheduler: started with schedule '%s', window %s", s.config.Schedule, s.config.Window)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *DigestScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Digest scheduler: stopped")
}

// RunNow enqueues a digest immediately.
func (s *DigestScheduler) RunNow() {
	s.enqueueDigest()
}

// IsRunning returns whether the scheduler is active.
func (s *DigestScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next digest will be enqueued.
func (s *DigestScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *DigestScheduler) enqueueDigest() {
	since := time.Now().Add(-s.config.Window)
	task := tasks.NewReleasesDigestTask{Since: since}
	if err := s.tasks.Add(task).Save(); err != nil {
		log.Printf("Digest scheduler: failed to enqueue digest: %v", err)
		return
	}
	log.Printf("Digest scheduler: enqueued digest covering additions since %s", since.Format(time.RFC3339))
}

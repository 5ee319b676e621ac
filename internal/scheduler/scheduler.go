package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/alertdeck-dev/alertdeck/db"
	"github.com/alertdeck-dev/alertdeck/internal/reminders"
)

const defaultInterval = 300 * time.Second

// Scheduler periodically runs the reminder cycle. Runs are serialized with
// a mutex so a slow cycle is never overlapped by the next tick.
type Scheduler struct {
	interval time.Duration
	runMu    sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewScheduler initializes a new Scheduler instance
func NewScheduler(interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins ticking reminder cycles, with an immediate first run
func (s *Scheduler) Start() {
	log.Printf("Starting reminder scheduler (interval %v)...", s.interval)

	go func() {
		s.runCycle()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runCycle()
			}
		}
	}()
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping reminder scheduler...")
	s.cancel()
}

func (s *Scheduler) runCycle() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	now := time.Now().UTC()

	result, err := reminders.RunReminderCycle(db.DB, now)

	if err != nil {
		log.Printf("Reminder cycle failed: %v", err)
		return
	}

	if result.Count > 0 {
		log.Printf("Reminder cycle delivered %d notifications", result.Count)
	}
}

// Global scheduler instance
var globalScheduler *Scheduler

// Initialize creates and starts the global scheduler
func Initialize() error {
	interval := defaultInterval

	if raw := os.Getenv("REMINDER_INTERVAL"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			log.Printf("Invalid REMINDER_INTERVAL %q, using default", raw)
		} else {
			interval = time.Duration(seconds) * time.Second
		}
	}

	globalScheduler = NewScheduler(interval)
	globalScheduler.Start()
	return nil
}

// Shutdown stops the global scheduler
func Shutdown() {
	if globalScheduler != nil {
		globalScheduler.Stop()
	}
}

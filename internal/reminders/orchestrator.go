package reminders

import (
	"fmt"
	"time"

	"github.com/alertdeck-dev/alertdeck/internal/notifications"
	"gorm.io/gorm"
)

// CycleResult summarizes a completed reminder cycle.
type CycleResult struct {
	Count int `json:"count"`
}

// DeliveryError wraps a failure during the staging or commit phase of a
// cycle. The whole batch is rolled back, so a caller can safely retry the
// cycle from scratch.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("reminder delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// RunReminderCycle finds all pairs needing a reminder at now and delivers
// them through the in-app channel.
func RunReminderCycle(tx *gorm.DB, now time.Time) (CycleResult, error) {
	return RunReminderCycleOn(tx, now, notifications.ChannelInApp)
}

// RunReminderCycleOn is RunReminderCycle with an explicit channel. Delivery
// log entries for the whole batch commit atomically; any staging failure
// discards the batch and surfaces a *DeliveryError. An unknown channel name
// fails before any delivery work with notifications.ErrUnsupportedChannel.
func RunReminderCycleOn(tx *gorm.DB, now time.Time, channelName string) (CycleResult, error) {
	candidates, err := FindReminderCandidates(tx, now)

	if err != nil {
		return CycleResult{}, err
	}

	if len(candidates) == 0 {
		return CycleResult{Count: 0}, nil
	}

	channel, err := notifications.Get(channelName)

	if err != nil {
		return CycleResult{}, err
	}

	err = tx.Transaction(func(txn *gorm.DB) error {
		for _, candidate := range candidates {
			if _, err := channel.Send(txn, candidate.User, candidate.Alert, now); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return CycleResult{}, &DeliveryError{Err: err}
	}

	// The batch is durable at this point; refresh connected clients.
	for _, candidate := range candidates {
		notifications.PushReminder(candidate.User.ID, candidate.Alert)
	}

	return CycleResult{Count: len(candidates)}, nil
}

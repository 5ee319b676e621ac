package reminders

import (
	"time"

	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/alertdeck-dev/alertdeck/internal/status"
	"github.com/alertdeck-dev/alertdeck/internal/types"
	"github.com/alertdeck-dev/alertdeck/internal/visibility"
	"gorm.io/gorm"
)

// Candidate is a (user, alert) pair that currently needs a reminder.
type Candidate struct {
	User  models.User
	Alert models.Alert
}

// FindReminderCandidates returns every pair that needs a reminder at now.
//
// A pair qualifies when the alert is live (not archived, reminders enabled,
// started, not yet expired — expiry is an exclusive bound), the user is a
// target of the alert, and the user's effective status is UNREAD with no
// active snooze. Pure read; results are ordered by alert id then user id so
// a fixed snapshot always yields the same sequence.
func FindReminderCandidates(tx *gorm.DB, now time.Time) ([]Candidate, error) {
	var alerts []models.Alert

	err := tx.
		Where("is_archived = ?", false).
		Where("reminder_enabled = ?", true).
		Where("start_time <= ?", now).
		Where("expiry_time IS NULL OR expiry_time > ?", now).
		Order("id").
		Find(&alerts).Error

	if err != nil {
		return nil, err
	}

	var candidates []Candidate

	for _, alert := range alerts {
		users, err := visibility.Resolve(tx, alert)

		if err != nil {
			return nil, err
		}

		if len(users) == 0 {
			continue
		}

		var records []models.UserAlertStatus

		if err := tx.Where("alert_id = ?", alert.ID).Find(&records).Error; err != nil {
			return nil, err
		}

		recordsByUser := make(map[uint]*models.UserAlertStatus, len(records))
		for i := range records {
			recordsByUser[records[i].UserID] = &records[i]
		}

		for _, user := range users {
			state, snoozedUntil := status.Effective(recordsByUser[user.ID])

			// READ suppresses reminders for the pair permanently
			if state != types.StatusUnread {
				continue
			}

			if snoozedUntil != nil && snoozedUntil.After(now) {
				continue
			}

			candidates = append(candidates, Candidate{User: user, Alert: alert})
		}
	}

	return candidates, nil
}

package status

import (
	"errors"
	"time"

	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/alertdeck-dev/alertdeck/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Effective returns the status and snooze expiry for a (user, alert) pair.
// A missing row is equivalent to {UNREAD, no snooze}; rows are only
// materialized on the first explicit read or snooze action.
func Effective(record *models.UserAlertStatus) (string, *time.Time) {
	if record == nil {
		return types.StatusUnread, nil
	}
	return record.Status, record.SnoozedUntil
}

// Get fetches the status row for a pair, or nil if none exists yet.
func Get(tx *gorm.DB, userID, alertID uint) (*models.UserAlertStatus, error) {
	var record models.UserAlertStatus

	err := tx.Where("user_id = ? AND alert_id = ?", userID, alertID).First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

// MarkRead upserts the pair's row with status READ. Any snooze on the row is
// left untouched. Calling it again is a no-op beyond the final state.
func MarkRead(tx *gorm.DB, userID, alertID uint) error {
	record := models.UserAlertStatus{
		UserID:  userID,
		AlertID: alertID,
		Status:  types.StatusRead,
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "alert_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"status": types.StatusRead}),
	}).Create(&record).Error
}

// Snooze upserts the pair's snooze expiry, leaving the read status untouched.
// A nil until defaults to the end of the current calendar day in UTC. A time
// in the past is accepted and simply behaves as a lapsed snooze.
func Snooze(tx *gorm.DB, userID, alertID uint, until *time.Time, now time.Time) error {
	snoozedUntil := EndOfDayUTC(now)

	if until != nil {
		snoozedUntil = *until
	}

	record := models.UserAlertStatus{
		UserID:       userID,
		AlertID:      alertID,
		SnoozedUntil: &snoozedUntil,
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "alert_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"snoozed_until": snoozedUntil}),
	}).Create(&record).Error
}

// EndOfDayUTC returns 23:59:59.999999 UTC on the day containing now.
func EndOfDayUTC(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999000, time.UTC)
}

package notifications

import (
	"time"

	"github.com/alertdeck-dev/alertdeck/internal/models"
	"gorm.io/gorm"
)

// InAppChannel "sends" a notification by staging a delivery log entry.
// Connected dashboard clients are refreshed separately, after the batch
// commits (see PushReminder).
type InAppChannel struct{}

func (InAppChannel) Name() string {
	return ChannelInApp
}

func (InAppChannel) Send(tx *gorm.DB, user models.User, alert models.Alert, now time.Time) (*models.NotificationDelivery, error) {
	entry := models.NotificationDelivery{
		AlertID: alert.ID,
		UserID:  user.ID,
		Channel: ChannelInApp,
		SentAt:  now,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

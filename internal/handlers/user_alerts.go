package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/alertdeck-dev/alertdeck/db"
	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/alertdeck-dev/alertdeck/internal/status"
	"github.com/alertdeck-dev/alertdeck/internal/utils"
	"github.com/alertdeck-dev/alertdeck/internal/visibility"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PersonalStatus struct {
	Status       string     `json:"status"`
	SnoozedUntil *time.Time `json:"snoozed_until"`
}

type UserAlertResponse struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	MessageBody    string         `json:"message_body"`
	Severity       string         `json:"severity"`
	StartTime      time.Time      `json:"start_time"`
	PersonalStatus PersonalStatus `json:"personal_status"`
}

type SnoozeRequest struct {
	Until *time.Time `json:"until"`
}

// GetUserAlerts returns every active alert visible to the user, each with
// the user's effective read/snooze state. This is the user dashboard feed.
func GetUserAlerts(ctx *gin.Context) {
	userID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	now := time.Now().UTC()

	var alerts []models.Alert

	err = visibility.ResolveAlertsForUser(db.DB, user).
		Where("is_archived = ?", false).
		Where("start_time <= ?", now).
		Where("expiry_time IS NULL OR expiry_time > ?", now).
		Order("id").
		Find(&alerts).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alerts"})
		return
	}

	response := make([]UserAlertResponse, 0, len(alerts))

	for _, alert := range alerts {
		record, err := status.Get(db.DB, user.ID, alert.ID)

		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alert status"})
			return
		}

		state, snoozedUntil := status.Effective(record)

		response = append(response, UserAlertResponse{
			ID:          alert.ID,
			Title:       alert.Title,
			MessageBody: alert.MessageBody,
			Severity:    alert.Severity,
			StartTime:   alert.StartTime,
			PersonalStatus: PersonalStatus{
				Status:       state,
				SnoozedUntil: snoozedUntil,
			},
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func MarkAlertRead(ctx *gin.Context) {
	userID, alertID, err := utils.GetUserAlertID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := status.MarkRead(db.DB, userID, alertID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark alert as read"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func SnoozeAlert(ctx *gin.Context) {
	userID, alertID, err := utils.GetUserAlertID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Body is optional; with none the snooze lasts until end of day UTC
	var req SnoozeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := status.Snooze(db.DB, userID, alertID, req.Until, time.Now().UTC()); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to snooze alert"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

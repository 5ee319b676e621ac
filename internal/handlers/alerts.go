package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/alertdeck-dev/alertdeck/db"
	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/alertdeck-dev/alertdeck/internal/notifications"
	"github.com/alertdeck-dev/alertdeck/internal/reminders"
	"github.com/alertdeck-dev/alertdeck/internal/types"
	"github.com/alertdeck-dev/alertdeck/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateAlertRequest struct {
	Title           string     `json:"title" binding:"required"`
	MessageBody     string     `json:"message_body" binding:"required"`
	Severity        string     `json:"severity" binding:"omitempty,oneof=INFO WARNING CRITICAL"`
	StartTime       *time.Time `json:"start_time"`
	ExpiryTime      *time.Time `json:"expiry_time"`
	ReminderEnabled *bool      `json:"reminder_enabled"`
	IsOrgWide       bool       `json:"is_org_wide"`
	TargetUserIDs   []uint     `json:"target_user_ids"`
	TargetTeamIDs   []uint     `json:"target_team_ids"`
}

type UpdateAlertRequest struct {
	Title           *string    `json:"title"`
	MessageBody     *string    `json:"message_body"`
	Severity        *string    `json:"severity" binding:"omitempty,oneof=INFO WARNING CRITICAL"`
	ExpiryTime      *time.Time `json:"expiry_time"`
	ReminderEnabled *bool      `json:"reminder_enabled"`
	IsArchived      *bool      `json:"is_archived"`
}

type AlertResponse struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	MessageBody     string             `json:"message_body"`
	Severity        string             `json:"severity"`
	StartTime       time.Time          `json:"start_time"`
	ExpiryTime      *time.Time         `json:"expiry_time"`
	ReminderEnabled bool               `json:"reminder_enabled"`
	IsArchived      bool               `json:"is_archived"`
	IsOrgWide       bool               `json:"is_org_wide"`
	CreatedBy       types.UserResponse `json:"created_by"`
	TargetUserIDs   []uint             `json:"target_user_ids"`
	TargetTeamIDs   []uint             `json:"target_team_ids"`
}

func CreateAlert(ctx *gin.Context) {
	var req CreateAlertRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var targetUsers []models.User

	if len(req.TargetUserIDs) > 0 {
		if err := db.DB.Where("id IN ?", req.TargetUserIDs).Find(&targetUsers).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve target users"})
			return
		}

		if len(targetUsers) != len(req.TargetUserIDs) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
			return
		}
	}

	var targetTeams []models.Team

	if len(req.TargetTeamIDs) > 0 {
		if err := db.DB.Where("id IN ?", req.TargetTeamIDs).Find(&targetTeams).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve target teams"})
			return
		}

		if len(targetTeams) != len(req.TargetTeamIDs) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Target team not found"})
			return
		}
	}

	severity := req.Severity
	if severity == "" {
		severity = types.SeverityInfo
	}

	startTime := time.Now().UTC()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	reminderEnabled := true
	if req.ReminderEnabled != nil {
		reminderEnabled = *req.ReminderEnabled
	}

	alert := models.Alert{
		Title:           req.Title,
		MessageBody:     req.MessageBody,
		Severity:        severity,
		StartTime:       startTime,
		ExpiryTime:      req.ExpiryTime,
		ReminderEnabled: reminderEnabled,
		IsOrgWide:       req.IsOrgWide,
		CreatedByID:     userID,
		TargetUsers:     targetUsers,
		TargetTeams:     targetTeams,
	}

	if err := db.DB.Create(&alert).Error; err != nil {
		log.Printf("Failed to create alert: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alert"})
		return
	}

	ctx.JSON(http.StatusCreated, buildAlertResponse(alert))
}

func ListAlerts(ctx *gin.Context) {
	isArchived := ctx.DefaultQuery("is_archived", "false") == "true"

	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	query := db.DB.
		Preload("CreatedBy").
		Preload("TargetUsers").
		Preload("TargetTeams").
		Where("is_archived = ?", isArchived)

	if severity := ctx.Query("severity"); severity != "" {
		if !types.ValidSeverity(severity) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid severity"})
			return
		}
		query = query.Where("severity = ?", severity)
	}

	var alerts []models.Alert

	if err := query.Order("id").Offset(skip).Limit(limit).Find(&alerts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alerts"})
		return
	}

	response := make([]AlertResponse, 0, len(alerts))

	for _, alert := range alerts {
		response = append(response, buildAlertResponse(alert))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetAlert(ctx *gin.Context) {
	alertID, err := utils.GetAlertID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var alert models.Alert

	err = db.DB.
		Preload("CreatedBy").
		Preload("TargetUsers").
		Preload("TargetTeams").
		First(&alert, alertID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alert"})
		}
		return
	}

	ctx.JSON(http.StatusOK, buildAlertResponse(alert))
}

func UpdateAlert(ctx *gin.Context) {
	alertID, err := utils.GetAlertID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateAlertRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var alert models.Alert

	if err := db.DB.First(&alert, alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alert"})
		}
		return
	}

	// Partial update: only supplied fields overwrite
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.MessageBody != nil {
		updates["message_body"] = *req.MessageBody
	}
	if req.Severity != nil {
		updates["severity"] = *req.Severity
	}
	if req.ExpiryTime != nil {
		updates["expiry_time"] = *req.ExpiryTime
	}
	if req.ReminderEnabled != nil {
		updates["reminder_enabled"] = *req.ReminderEnabled
	}
	if req.IsArchived != nil {
		updates["is_archived"] = *req.IsArchived
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&alert).Updates(updates).Error; err != nil {
		log.Printf("Failed to update alert %d: %v", alert.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alert"})
		return
	}

	err = db.DB.
		Preload("CreatedBy").
		Preload("TargetUsers").
		Preload("TargetTeams").
		First(&alert, alert.ID).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh alert"})
		return
	}

	ctx.JSON(http.StatusOK, buildAlertResponse(alert))
}

// ArchiveAlert soft-deletes an alert by flipping is_archived. One-way: there
// is no unarchive endpoint.
func ArchiveAlert(ctx *gin.Context) {
	alertID, err := utils.GetAlertID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var alert models.Alert

	if err := db.DB.First(&alert, alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alert"})
		}
		return
	}

	if err := db.DB.Model(&alert).Update("is_archived", true).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive alert"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// TriggerReminders runs a reminder cycle on demand. In production the
// scheduler covers the periodic case; this endpoint exists for operators.
func TriggerReminders(ctx *gin.Context) {
	result, err := reminders.RunReminderCycle(db.DB, time.Now().UTC())

	if err != nil {
		var deliveryErr *reminders.DeliveryError

		switch {
		case errors.Is(err, notifications.ErrUnsupportedChannel):
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		case errors.As(err, &deliveryErr):
			log.Printf("Reminder cycle aborted: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Reminder cycle failed, no notifications were sent"})
		default:
			log.Printf("Reminder cycle failed: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process reminders"})
		}
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func buildAlertResponse(alert models.Alert) AlertResponse {
	targetUserIDs := make([]uint, 0, len(alert.TargetUsers))
	for _, user := range alert.TargetUsers {
		targetUserIDs = append(targetUserIDs, user.ID)
	}

	targetTeamIDs := make([]uint, 0, len(alert.TargetTeams))
	for _, team := range alert.TargetTeams {
		targetTeamIDs = append(targetTeamIDs, team.ID)
	}

	return AlertResponse{
		ID:              alert.ID,
		Title:           alert.Title,
		MessageBody:     alert.MessageBody,
		Severity:        alert.Severity,
		StartTime:       alert.StartTime,
		ExpiryTime:      alert.ExpiryTime,
		ReminderEnabled: alert.ReminderEnabled,
		IsArchived:      alert.IsArchived,
		IsOrgWide:       alert.IsOrgWide,
		CreatedBy: types.UserResponse{
			ID:       alert.CreatedBy.ID,
			Email:    alert.CreatedBy.Email,
			FullName: alert.CreatedBy.FullName,
			TeamID:   alert.CreatedBy.TeamID,
		},
		TargetUserIDs: targetUserIDs,
		TargetTeamIDs: targetTeamIDs,
	}
}

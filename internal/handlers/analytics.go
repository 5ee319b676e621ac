package handlers

import (
	"net/http"
	"time"

	"github.com/alertdeck-dev/alertdeck/db"
	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/alertdeck-dev/alertdeck/internal/types"
	"github.com/gin-gonic/gin"
)

type OverallStats struct {
	TotalAlertsCreated     int64 `json:"total_alerts_created"`
	TotalNotificationsSent int64 `json:"total_notifications_sent"`
	TotalReads             int64 `json:"total_reads"`
	ActiveSnoozes          int64 `json:"active_snoozes"`
}

type SeverityBreakdown struct {
	Critical int64 `json:"critical"`
	Warning  int64 `json:"warning"`
	Info     int64 `json:"info"`
}

type AlertPerformance struct {
	AlertID           uint   `json:"alert_id"`
	AlertTitle        string `json:"alert_title"`
	NotificationsSent int64  `json:"notifications_sent"`
	ReadCount         int64  `json:"read_count"`
	SnoozeCount       int64  `json:"snooze_count"`
}

type AnalyticsDashboardResponse struct {
	OverallStats      OverallStats       `json:"overall_stats"`
	SeverityBreakdown SeverityBreakdown  `json:"severity_breakdown"`
	AlertsPerformance []AlertPerformance `json:"alerts_performance"`
}

// GetAnalyticsDashboard reports system-wide alert performance. Delivery log
// rows are only ever read here, never by the reminder logic.
func GetAnalyticsDashboard(ctx *gin.Context) {
	now := time.Now().UTC()

	var stats OverallStats

	db.DB.Model(&models.Alert{}).Count(&stats.TotalAlertsCreated)
	db.DB.Model(&models.NotificationDelivery{}).Count(&stats.TotalNotificationsSent)
	db.DB.Model(&models.UserAlertStatus{}).
		Where("status = ?", types.StatusRead).
		Count(&stats.TotalReads)
	db.DB.Model(&models.UserAlertStatus{}).
		Where("snoozed_until > ?", now).
		Count(&stats.ActiveSnoozes)

	var severityCounts []struct {
		Severity string
		Count    int64
	}

	if err := db.DB.Model(&models.Alert{}).
		Select("severity, count(id) as count").
		Group("severity").
		Scan(&severityCounts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute severity breakdown"})
		return
	}

	var breakdown SeverityBreakdown

	for _, row := range severityCounts {
		switch row.Severity {
		case types.SeverityCritical:
			breakdown.Critical = row.Count
		case types.SeverityWarning:
			breakdown.Warning = row.Count
		case types.SeverityInfo:
			breakdown.Info = row.Count
		}
	}

	var alerts []models.Alert

	if err := db.DB.Order("id").Find(&alerts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alerts"})
		return
	}

	performance := make([]AlertPerformance, 0, len(alerts))

	for _, alert := range alerts {
		entry := AlertPerformance{
			AlertID:    alert.ID,
			AlertTitle: alert.Title,
		}

		db.DB.Model(&models.NotificationDelivery{}).
			Where("alert_id = ?", alert.ID).
			Count(&entry.NotificationsSent)
		db.DB.Model(&models.UserAlertStatus{}).
			Where("alert_id = ? AND status = ?", alert.ID, types.StatusRead).
			Count(&entry.ReadCount)
		db.DB.Model(&models.UserAlertStatus{}).
			Where("alert_id = ? AND snoozed_until > ?", alert.ID, now).
			Count(&entry.SnoozeCount)

		performance = append(performance, entry)
	}

	ctx.JSON(http.StatusOK, AnalyticsDashboardResponse{
		OverallStats:      stats,
		SeverityBreakdown: breakdown,
		AlertsPerformance: performance,
	})
}

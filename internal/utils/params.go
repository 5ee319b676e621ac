package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetUserID(ctx *gin.Context) (uint, error) {
	userIDStr := ctx.Param("user_id")

	if userIDStr == "" {
		return 0, errors.New("User ID not found")
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid User ID")
	}

	return uint(userID), nil
}

func GetAlertID(ctx *gin.Context) (uint, error) {
	alertIDStr := ctx.Param("alert_id")

	if alertIDStr == "" {
		return 0, errors.New("Alert ID not found")
	}

	alertID, err := strconv.ParseUint(alertIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid Alert ID")
	}

	return uint(alertID), nil
}

func GetUserAlertID(ctx *gin.Context) (uint, uint, error) {
	userID, err := GetUserID(ctx)

	if err != nil {
		return 0, 0, err
	}

	alertID, err := GetAlertID(ctx)

	if err != nil {
		return 0, 0, err
	}

	return userID, alertID, nil
}

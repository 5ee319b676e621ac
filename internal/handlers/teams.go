package handlers

import (
	"net/http"

	"github.com/alertdeck-dev/alertdeck/db"
	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/gin-gonic/gin"
)

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

type TeamResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func CreateTeam(ctx *gin.Context) {
	var req CreateTeamRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	team := models.Team{Name: req.Name}

	if err := db.DB.Create(&team).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	ctx.JSON(http.StatusCreated, TeamResponse{ID: team.ID, Name: team.Name})
}

func ListTeams(ctx *gin.Context) {
	var teams []models.Team

	if err := db.DB.Order("id").Find(&teams).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}

	response := make([]TeamResponse, 0, len(teams))

	for _, team := range teams {
		response = append(response, TeamResponse{ID: team.ID, Name: team.Name})
	}

	ctx.JSON(http.StatusOK, response)
}

// controllers/poster_controller.go
package controllers

import (
	"net/http"

	"eventix-backend/services"
	"eventix-backend/utils"

	"github.com/gin-gonic/gin"
)

type PosterController struct {
	Service *services.PosterService
}

func NewPosterController(service *services.PosterService) *PosterController {
	return &PosterController{Service: service}
}

type posterSuggestionPayload struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	EventType   string `json:"event_type"`
	Theme       string `json:"theme"`
}

type taglinePayload struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (ctl *PosterController) GeneratePosterSuggestions(c *gin.Context) {
	var payload posterSuggestionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Title and description are required")
		return
	}

	suggestions, err := ctl.Service.GeneratePosterSuggestions(payload.Title, payload.Description, payload.EventType, payload.Theme)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "error.posterGeneration", "Failed to generate poster suggestions")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"suggestions": suggestions}, "Poster suggestions generated successfully")
}

func (ctl *PosterController) GenerateTaglines(c *gin.Context) {
	var payload taglinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Title and description are required")
		return
	}

	taglines, err := ctl.Service.GenerateTaglines(payload.Title, payload.Description)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "error.posterGeneration", "Failed to generate taglines")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"taglines": taglines}, "Taglines generated successfully")
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heybabyy/internal/models"
	"heybabyy/internal/nutrition"
	"heybabyy/internal/validation"
)

type parseRequest struct {
	Text      string  `json:"text"`
	AgeMonths float64 `json:"age_months"`
}

type summaryRequest struct {
	Log       models.DailyLog `json:"log"`
	AgeMonths float64         `json:"age_months"`
}

type trendsRequest struct {
	Summaries []models.DailySummary `json:"summaries"`
	AgeMonths float64               `json:"age_months"`
}

type guidelinesResponse struct {
	AgeMonths  float64           `json:"age_months"`
	Guidelines models.Guidelines `json:"guidelines"`
	Tips       []models.Tip      `json:"tips"`
}

// Guidelines returns the feeding guidelines and tips for an age
func (h *Handler) Guidelines(c *gin.Context) {
	age, err := strconv.ParseFloat(c.Query("age_months"), 64)
	if err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidQuery, "", err)
		return
	}
	if err := validation.ValidateAgeMonths(age); err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, guidelinesResponse{
		AgeMonths:  age,
		Guidelines: nutrition.GuidelinesForAge(age),
		Tips:       nutrition.TipsForAge(age),
	})
}

// ParseFreeText turns a note into stamped entries without storing them
func (h *Handler) ParseFreeText(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	if err := validation.ValidateFreeText(req.Text); err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	if err := validation.ValidateAgeMonths(req.AgeMonths); err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}

	parsed := nutrition.ParseFreeText(req.Text, req.AgeMonths)
	parsed.Feedings, parsed.Diapers = h.entries.Stamp(parsed)
	c.JSON(http.StatusOK, parsed)
}

// Summarize totals a day's log and raises its alerts
func (h *Handler) Summarize(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	if err := validation.ValidateAgeMonths(req.AgeMonths); err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nutrition.Summarize(req.Log, req.AgeMonths))
}

// WeeklyTrends looks across recent summaries for sustained patterns
func (h *Handler) WeeklyTrends(c *gin.Context) {
	var req trendsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	if err := validation.ValidateAgeMonths(req.AgeMonths); err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": nutrition.WeeklyTrends(req.Summaries, req.AgeMonths)})
}

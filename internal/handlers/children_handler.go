package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heybabyy/internal/models"
	"heybabyy/internal/nutrition"
	"heybabyy/internal/validation"
)

type createChildRequest struct {
	Name      string `json:"name"`
	Sex       string `json:"sex"`
	BirthDate string `json:"birth_date"`
}

type measurementRequest struct {
	MeasuredOn string   `json:"measured_on"`
	WeightKg   float64  `json:"weight_kg"`
	LengthCm   *float64 `json:"length_cm"`
}

type freeTextRequest struct {
	Text string `json:"text"`
}

type digestRequest struct {
	Email string `json:"email"`
}

type summaryResponse struct {
	ChildName string              `json:"child_name"`
	Summary   models.DailySummary `json:"summary"`
	Text      string              `json:"text"`
}

// CreateChild registers a child profile
func (h *Handler) CreateChild(c *gin.Context) {
	var req createChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	child, err := h.children.CreateChild(req.Name, req.Sex, req.BirthDate)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, child)
}

// ListChildren returns every child profile
func (h *Handler) ListChildren(c *gin.Context) {
	children, err := h.children.ListChildren()
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"children": children})
}

func (h *Handler) GetChild(c *gin.Context) {
	child, err := h.children.GetChild(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, child)
}

// DeleteChild removes a child and everything logged for them
func (h *Handler) DeleteChild(c *gin.Context) {
	if err := h.children.DeleteChild(c.Param("id")); err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordMeasurement stores a weighing; a second one on the same day replaces the first
func (h *Handler) RecordMeasurement(c *gin.Context) {
	var req measurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	record, err := h.growth.RecordMeasurement(c.Param("id"), req.MeasuredOn, req.WeightKg, req.LengthCm)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) ListMeasurements(c *gin.Context) {
	records, err := h.growth.ListMeasurements(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": records})
}

// ChildGrowth analyses the stored measurements of a child
func (h *Handler) ChildGrowth(c *gin.Context) {
	result, err := h.growth.ChildGrowth(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ChildTrends summarises the days ending at ?end= (default today) and
// checks them for trends. ?days= sets the window length.
func (h *Handler) ChildTrends(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidQuery, "", err)
			return
		}
		days = n
	}
	report, err := h.nutrition.Trends(c.Param("id"), c.Query("end"), days)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) DailyLog(c *gin.Context) {
	log, err := h.nutrition.DailyLog(c.Param("id"), c.Param("date"))
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// DailySummary returns the day's totals, alerts and a plain-text rendering
func (h *Handler) DailySummary(c *gin.Context) {
	summary, name, err := h.nutrition.DailySummary(c.Param("id"), c.Param("date"))
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse{
		ChildName: name,
		Summary:   summary,
		Text:      nutrition.FormatSummary(summary),
	})
}

// LogFreeText parses a note and stores what it recognised
func (h *Handler) LogFreeText(c *gin.Context) {
	var req freeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	result, err := h.nutrition.LogFreeText(c.Param("id"), c.Param("date"), req.Text)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) AddFeeding(c *gin.Context) {
	var req models.FeedingEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	entry, err := h.nutrition.AddFeeding(c.Param("id"), c.Param("date"), req)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) AddDiaper(c *gin.Context) {
	var req models.DiaperEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	entry, err := h.nutrition.AddDiaper(c.Param("id"), c.Param("date"), req)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// SendDigest emails the day's summary to a caregiver
func (h *Handler) SendDigest(c *gin.Context) {
	var req digestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	summary, err := h.nutrition.SendDigest(c.Request.Context(), c.Param("id"), c.Param("date"), req.Email)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"sent_to": req.Email, "summary": summary})
}

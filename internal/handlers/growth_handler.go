package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heybabyy/internal/growth"
	"heybabyy/internal/models"
	"heybabyy/internal/validation"
)

const (
	defaultCurveMonths = 24
	maxCurveMonths     = 60
)

type analyzeRequest struct {
	Sex       string   `json:"sex" binding:"required"`
	AgeMonths float64  `json:"age_months"`
	WeightKg  float64  `json:"weight_kg"`
	LengthCm  *float64 `json:"length_cm"`
}

type zScoreRequest struct {
	Sex       string  `json:"sex" binding:"required"`
	Type      string  `json:"type"`
	AgeMonths float64 `json:"age_months"`
	Value     float64 `json:"value"`
}

type zScoreResponse struct {
	ZScore     float64    `json:"z_score"`
	Percentile int        `json:"percentile"`
	LMS        models.LMS `json:"lms"`
}

type seriesRequest struct {
	Sex          string               `json:"sex" binding:"required"`
	Measurements []models.Measurement `json:"measurements"`
}

type sparklineResponse struct {
	models.Sparkline
	ASCII string `json:"ascii"`
}

// AnalyzeGrowth classifies a single weight (and optional length) reading
func (h *Handler) AnalyzeGrowth(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	sex, err := validation.ValidateSex(req.Sex)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	if err := validation.ValidateAgeMonths(req.AgeMonths); err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}

	analysis, err := growth.Analyze(sex, req.AgeMonths, req.WeightKg, req.LengthCm)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// ZScore scores a single weight or length value
func (h *Handler) ZScore(c *gin.Context) {
	var req zScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}
	sex, err := validation.ValidateSex(req.Sex)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	if err := validation.ValidateAgeMonths(req.AgeMonths); err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	if req.Type == "" {
		req.Type = string(models.MeasurementWeight)
	}
	kind, err := validation.ValidateMeasurementType(req.Type)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}

	z, err := growth.ZScore(sex, req.AgeMonths, req.Value, kind)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, zScoreResponse{
		ZScore:     z,
		Percentile: growth.ZScoreToPercentile(z),
		LMS:        growth.LMSParams(sex, req.AgeMonths, kind),
	})
}

// DetectDrift checks a weight series for percentile crossing
func (h *Handler) DetectDrift(c *gin.Context) {
	sex, measurements, ok := h.bindSeries(c)
	if !ok {
		return
	}
	result, err := growth.DetectDrift(measurements, sex)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Sparkline normalises a weight series for compact display
func (h *Handler) Sparkline(c *gin.Context) {
	sex, measurements, ok := h.bindSeries(c)
	if !ok {
		return
	}
	line, err := growth.Sparkline(measurements, sex)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sparklineResponse{Sparkline: line, ASCII: growth.SparklineASCII(line.Points)})
}

// PercentileCurves returns the reference percentile lines for charting
func (h *Handler) PercentileCurves(c *gin.Context) {
	sex, err := validation.ValidateSex(c.Query("sex"))
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	kind, err := validation.ValidateMeasurementType(c.DefaultQuery("type", string(models.MeasurementWeight)))
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return
	}
	maxMonth, err := strconv.Atoi(c.DefaultQuery("max_month", strconv.Itoa(defaultCurveMonths)))
	if err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidQuery, "", err)
		return
	}
	if maxMonth > maxCurveMonths {
		maxMonth = maxCurveMonths
	}

	c.JSON(http.StatusOK, gin.H{
		"sex":         sex,
		"type":        kind,
		"percentiles": growth.PercentileLines(sex, kind, maxMonth),
	})
}

func (h *Handler) bindSeries(c *gin.Context) (models.Sex, []models.Measurement, bool) {
	var req seriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, h.logger, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return "", nil, false
	}
	sex, err := validation.ValidateSex(req.Sex)
	if err != nil {
		respondWithServiceError(c, h.logger, err)
		return "", nil, false
	}
	return sex, req.Measurements, true
}

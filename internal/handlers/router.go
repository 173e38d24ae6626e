package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heybabyy/internal/nutrition"
	"heybabyy/internal/security"
	"heybabyy/internal/service"
)

// Version is reported by the health endpoint
var Version = "dev"

// Handler serves the JSON API
type Handler struct {
	children  *service.ChildService
	growth    *service.GrowthService
	nutrition *service.NutritionService
	entries   *nutrition.EntryFactory
	logger    *zap.Logger
}

// NewHandler creates a handler over the application services
func NewHandler(children *service.ChildService, growth *service.GrowthService, nutritionService *service.NutritionService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		children:  children,
		growth:    growth,
		nutrition: nutritionService,
		entries:   nutrition.NewEntryFactory(nil, nil),
		logger:    logger,
	}
}

// NewRouter registers every route. The limiter guards the free-text
// endpoints, which do the most work per byte of input.
func NewRouter(h *Handler, limiter *security.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
		})
	})

	throttled := RateLimit(limiter)
	api := r.Group("/api")

	g := api.Group("/growth")
	g.POST("/analyze", h.AnalyzeGrowth)
	g.POST("/zscore", h.ZScore)
	g.POST("/drift", h.DetectDrift)
	g.POST("/sparkline", h.Sparkline)
	g.GET("/curves", h.PercentileCurves)

	n := api.Group("/nutrition")
	n.GET("/guidelines", h.Guidelines)
	n.POST("/parse", throttled, h.ParseFreeText)
	n.POST("/summary", h.Summarize)
	n.POST("/trends", h.WeeklyTrends)

	ch := api.Group("/children")
	ch.POST("", h.CreateChild)
	ch.GET("", h.ListChildren)
	ch.GET("/:id", h.GetChild)
	ch.DELETE("/:id", h.DeleteChild)
	ch.POST("/:id/measurements", h.RecordMeasurement)
	ch.GET("/:id/measurements", h.ListMeasurements)
	ch.GET("/:id/growth", h.ChildGrowth)
	ch.GET("/:id/trends", h.ChildTrends)
	ch.GET("/:id/logs/:date", h.DailyLog)
	ch.GET("/:id/logs/:date/summary", h.DailySummary)
	ch.POST("/:id/logs/:date/text", throttled, h.LogFreeText)
	ch.POST("/:id/logs/:date/feedings", h.AddFeeding)
	ch.POST("/:id/logs/:date/diapers", h.AddDiaper)
	ch.POST("/:id/logs/:date/digest", h.SendDigest)

	return r
}

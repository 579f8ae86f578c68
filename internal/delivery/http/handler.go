package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommendations *usecase.RecommendationService
	charts          *usecase.ChartService
	logger          zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(recommendations *usecase.RecommendationService, charts *usecase.ChartService, logger zerolog.Logger) *Handler {
	return &Handler{
		recommendations: recommendations,
		charts:          charts,
		logger:          logger,
	}
}

// recommendationRequest is the JSON body of a calculation request as the
// extension sends it.
type recommendationRequest struct {
	ClientID     string                       `json:"clientId"`
	Retailer     string                       `json:"retailer"`
	Profile      domain.ShopperProfile        `json:"profile"`
	Category     string                       `json:"category"`
	TableRows    []domain.SizeTableRow        `json:"tableRows"`
	FitHint      string                       `json:"fitHint"`
	Reference    *domain.ReferenceMeasurement `json:"reference"`
	OfferedSizes []string                     `json:"offeredSizes"`
}

// chartPayload is the JSON body of a chart upload.
type chartPayload struct {
	Category string                `json:"category" binding:"required"`
	Rows     []domain.SizeTableRow `json:"rows" binding:"required"`
	Offered  []string              `json:"offered"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "perfit-backend",
		"version": "1.0.0",
	})
}

// CreateRecommendation computes a size recommendation for a shopper profile
// and whatever size data the extension scraped off the product page.
func (h *Handler) CreateRecommendation(c *gin.Context) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	rec, err := h.recommendations.Recommend(c.Request.Context(), usecase.RecommendInput{
		ClientID: req.ClientID,
		Retailer: req.Retailer,
		Request: domain.RecommendationRequest{
			Profile:      req.Profile,
			Category:     domain.Category(req.Category),
			TableRows:    req.TableRows,
			FitHint:      domain.FitHint(req.FitHint),
			Reference:    req.Reference,
			OfferedSizes: req.OfferedSizes,
		},
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// LastRecommendation returns the client's most recent recommendation.
func (h *Handler) LastRecommendation(c *gin.Context) {
	clientID := c.Query("clientId")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clientId query parameter is required"})
		return
	}

	rec, err := h.recommendations.LastRecommendation(c.Request.Context(), clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// GetChart returns the stored size chart for a retailer and category.
func (h *Handler) GetChart(c *gin.Context) {
	retailer := c.Param("retailer")
	category := domain.Category(c.DefaultQuery("category", string(domain.CategoryBottom)))

	rows, offered, err := h.charts.GetChart(c.Request.Context(), retailer, category)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"retailer": retailer,
		"category": category,
		"rows":     rows,
		"offered":  offered,
	})
}

// SaveChart stores a size chart for a retailer.
func (h *Handler) SaveChart(c *gin.Context) {
	retailer := c.Param("retailer")

	var payload chartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	err := h.charts.SaveChart(c.Request.Context(), retailer, domain.Category(payload.Category), payload.Rows, payload.Offered)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"retailer": retailer, "category": payload.Category, "rows": len(payload.Rows)})
}

// ListRetailers lists every retailer with a stored chart.
func (h *Handler) ListRetailers(c *gin.Context) {
	retailers, err := h.charts.Retailers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if retailers == nil {
		retailers = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"retailers": retailers})
}

// respondError maps domain errors onto HTTP statuses. Absent data is 404,
// unusable input 400, everything else 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoRecommendation),
		errors.Is(err, domain.ErrCacheMiss),
		errors.Is(err, domain.ErrChartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrInvalidChart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

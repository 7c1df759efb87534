package http

import (
	"net/http"
	"strconv"
	"time"

	"golang-market-insight/internal/market/dto"
	"golang-market-insight/internal/market/repository"
	"golang-market-insight/internal/market/service"
	"golang-market-insight/pkg/common"
	"golang-market-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketHandler handles HTTP requests for market data, recommendations and
// analysis.
type MarketHandler struct {
	marketSvc   service.MarketDataService
	recSvc      service.RecommendationService
	analysisSvc service.AnalysisService
	logger      *logger.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(
	marketSvc service.MarketDataService,
	recSvc service.RecommendationService,
	analysisSvc service.AnalysisService,
	log *logger.Logger,
) *MarketHandler {
	return &MarketHandler{
		marketSvc:   marketSvc,
		recSvc:      recSvc,
		analysisSvc: analysisSvc,
		logger:      log,
	}
}

// RegisterRoutes registers the market routes to the Echo group.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/nifty-indices", h.GetIndices)
	g.GET("/recommendations", h.GetRecommendations)
	g.GET("/analysis", h.GetAnalysis)
	g.POST("/analysis", h.PostAnalysis)
	g.POST("/real-time-update", h.RealTimeUpdate)
}

// GetIndices lists all market indices.
func (h *MarketHandler) GetIndices(c echo.Context) error {
	indices, err := h.marketSvc.GetIndices(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get indices", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": indices})
}

// GetRecommendations lists stored recommendations with optional alert_time,
// date and limit filters.
func (h *MarketHandler) GetRecommendations(c echo.Context) error {
	filter := repository.RecommendationFilter{
		AlertTime: c.QueryParam("alert_time"),
	}
	if dateStr := c.QueryParam("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid date, expected YYYY-MM-DD"})
		}
		filter.Date = &date
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid limit"})
		}
		filter.Limit = limit
	}

	recs, err := h.recSvc.GetRecommendations(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to get recommendations", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": recs})
}

// GetAnalysis serves the combined market analysis view.
func (h *MarketHandler) GetAnalysis(c echo.Context) error {
	analysis, err := h.analysisSvc.GetAnalysis(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get analysis", logger.ErrorField(err))
		return writeError(c, err)
	}
	if analysis == nil {
		return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{}})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": analysis})
}

// PostAnalysis accepts a manual sentiment and indicator ingest.
func (h *MarketHandler) PostAnalysis(c echo.Context) error {
	var req dto.PostAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	if err := h.analysisSvc.PostAnalysis(c.Request().Context(), &req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// RealTimeUpdate triggers a reconciliation cycle manually.
func (h *MarketHandler) RealTimeUpdate(c echo.Context) error {
	var req dto.RealTimeUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	switch req.Action {
	case "update_market_data":
		if err := h.marketSvc.UpdateMarketData(c.Request().Context()); err != nil {
			h.logger.Error("Market data update failed", logger.ErrorField(err))
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dto.RealTimeUpdateResponse{
			Status:        "ok",
			Message:       "Market data updated",
			SnapshotSaved: true,
		})

	case "generate_recommendations":
		alertTime := req.AlertTime
		if alertTime == "" {
			alertTime = common.AlertSlotMorning
		}
		created, err := h.recSvc.GenerateRecommendations(c.Request().Context(), alertTime)
		if err != nil {
			h.logger.Error("Recommendation cycle failed", logger.ErrorField(err))
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dto.RealTimeUpdateResponse{Status: "ok", Created: &created})

	default:
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Unknown action"})
	}
}

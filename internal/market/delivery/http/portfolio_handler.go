package http

import (
	"fmt"
	"net/http"

	"golang-market-insight/internal/market/dto"
	"golang-market-insight/internal/market/service"
	"golang-market-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles HTTP requests for the user's portfolio.
type PortfolioHandler struct {
	portfolioSvc service.PortfolioService
	logger       *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioSvc service.PortfolioService, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioSvc: portfolioSvc, logger: log}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/portfolio", h.GetPortfolio)
	g.POST("/portfolio", h.AddHolding)
}

// GetPortfolio returns all holdings with derived valuation and totals.
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	portfolio, err := h.portfolioSvc.GetPortfolio(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get portfolio", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, portfolio)
}

// AddHolding upserts one holding by ticker.
func (h *PortfolioHandler) AddHolding(c echo.Context) error {
	var req dto.AddHoldingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	holding, err := h.portfolioSvc.AddHolding(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": fmt.Sprintf("Stock %s added/updated", holding.Ticker),
	})
}

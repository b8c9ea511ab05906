package http

import (
	"net/http"
	"strings"

	"golang-stock-sentinel/internal/dashboard/service"
	"golang-stock-sentinel/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler handles HTTP requests for dashboard snapshots.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// RegisterRoutes registers the dashboard routes to the Echo group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetDashboard)
	g.GET("/tickers/:symbol/news", h.GetTickerNews)
}

// GetDashboard godoc
// @Summary Build a dashboard snapshot
// @Description Returns the flat price table, labeled news and sentiment distribution for one or more tickers
// @Tags dashboard
// @Produce  json
// @Param   tickers  query   string  true  "Comma-separated ticker symbols (e.g. AAPL,MSFT)"
// @Success 200 {object} dto.DashboardSnapshot
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	raw := c.QueryParam("tickers")
	tickers := splitTickers(raw)
	if len(tickers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query parameter 'tickers' is required"})
	}

	snapshot, err := h.dashboardService.BuildSnapshot(c.Request().Context(), tickers)
	if err != nil {
		h.logger.Error("Failed to build dashboard snapshot", logger.ErrorField(err), logger.StringField("tickers", raw))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build dashboard snapshot"})
	}

	return c.JSON(http.StatusOK, snapshot)
}

// GetTickerNews godoc
// @Summary Get labeled news for one ticker
// @Description Returns the news table projected to {title, source, publishedAt, sentiment} plus the sentiment distribution
// @Tags dashboard
// @Produce  json
// @Param   symbol  path    string  true  "Ticker symbol"
// @Success 200 {object} dto.TickerSentiment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{symbol}/news [get]
func (h *DashboardHandler) GetTickerNews(c echo.Context) error {
	symbol := c.Param("symbol")
	if strings.TrimSpace(symbol) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticker symbol is required"})
	}

	result, err := h.dashboardService.TickerNews(c.Request().Context(), symbol)
	if err != nil {
		h.logger.Error("Failed to get ticker news", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get ticker news"})
	}

	return c.JSON(http.StatusOK, result)
}

func splitTickers(raw string) []string {
	var tickers []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tickers = append(tickers, part)
		}
	}
	return tickers
}

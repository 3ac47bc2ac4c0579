package api

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
	"cryptoDashboard/internal/view"
)

// Constants
const (
	DefaultTimeout      = 30 * time.Second
	ServiceVersion      = "1.0.0"
	ServiceName         = "crypto-dashboard"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// CoinDataService builds /coin_data payloads.
type CoinDataService interface {
	GetCoinData(ctx context.Context, symbol, timeframe string) (*domain.CoinPayload, error)
}

// PortfolioService serves the account valuation history.
type PortfolioService interface {
	ChartData(ctx context.Context) (*domain.PnlPayload, error)
	Assets(ctx context.Context) (*domain.AssetSnapshot, error)
	ValueHistory(ctx context.Context) (dates []string, values []float64, err error)
}

// HoldingsService lists the open positions and the strategy ranking.
type HoldingsService interface {
	OpenPositions(ctx context.Context) ([]domain.Position, error)
	RankedCoins(ctx context.Context) ([]domain.RankedCoin, error)
}

// Dashboard owns the live views behind the pages.
type Dashboard interface {
	OpenCoin(ctx context.Context, symbol string) (*view.CoinView, error)
	SelectTimeframe(ctx context.Context, symbol, timeframe string) error
	Timeframes() []string
}

// PageStreamer streams page patches over a websocket.
type PageStreamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, page string) error
}

// APIHandler serves the JSON API, the dashboard pages and their patch stream.
type APIHandler struct {
	coins     CoinDataService
	portfolio PortfolioService
	holdings  HoldingsService
	dashboard Dashboard
	pages     PageStreamer
	logger    ports.Logger
}

// NewAPIHandler creates a new API handler. dashboard and pages may be nil, in
// which case only the JSON API is served. The portfolio and strategy pages
// also need holdings.
func NewAPIHandler(coins CoinDataService, portfolio PortfolioService, holdings HoldingsService, dashboard Dashboard, pages PageStreamer, logger ports.Logger) *APIHandler {
	return &APIHandler{
		coins:     coins,
		portfolio: portfolio,
		holdings:  holdings,
		dashboard: dashboard,
		pages:     pages,
		logger:    logger,
	}
}

// SetupRoutes configures all routes.
func (h *APIHandler) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(h.logger))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// JSON API
	router.GET("/coin_data", h.CoinData)
	router.GET("/chart_data", h.ChartData)
	router.GET("/assets_usd", h.Assets)
	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", h.Metrics)
	router.GET("/pnl", h.PnlPage)

	if h.dashboard != nil && h.pages != nil {
		router.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")))
		static, _ := fs.Sub(staticFS, "static")
		router.StaticFS("/static", http.FS(static))

		router.GET("/", h.HomePage)
		router.GET("/coin", h.CoinPage)
		router.POST("/ui/coin/timeframe", h.SelectTimeframe)
		router.GET("/ws", h.Stream)

		if h.holdings != nil {
			router.GET("/portfolio", h.PortfolioPage)
			router.GET("/strategy", h.StrategyPage)
		}
	}

	return router
}

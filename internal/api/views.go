package api

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"cryptoDashboard/internal/app"
	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
	"cryptoDashboard/internal/view"
)

// Back-link origins a coin page can be opened from.
const (
	fromPortfolio = "portfolio"
	fromStrategy  = "strategy"
)

var templateFuncs = template.FuncMap{
	"qty":   view.FormatQty,
	"price": view.FormatPrice,
	"score": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"inc":   func(i int) int { return i + 1 },
}

// link is a header navigation entry.
type link struct {
	URL   string
	Label string
}

// pageData is the template context shared by the dashboard pages.
type pageData struct {
	Title      string
	Page       string
	Symbol     string
	Back       link
	Timeframes []string
	Elements   map[string]string
	Positions  []domain.Position
	Ranked     []domain.RankedCoin
}

var homeLink = link{URL: "/", Label: "← Home"}

// backLink points a coin page at the list it was opened from.
func backLink(from string) link {
	if from == fromStrategy {
		return link{URL: "/strategy", Label: "← Strategy"}
	}
	return link{URL: "/portfolio", Label: "← Portfolio"}
}

func elementIDs() map[string]string {
	return map[string]string{
		"Chart":       view.ElementChart,
		"Events":      view.ElementEvents,
		"Momentum":    view.ElementMomentum,
		"StopLoss":    view.ElementStopLoss,
		"PnlCanvas":   view.ElementPnlCanvas,
		"AssetValue":  view.ElementAssetValue,
		"AssetDelta":  view.ElementAssetDelta,
		"ButtonClass": view.TimeframeButtonClass,
	}
}

// HomePage handles GET / requests
func (h *APIHandler) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", pageData{
		Title:    "Dashboard",
		Page:     app.HomePage,
		Elements: elementIDs(),
	})
}

// PortfolioPage handles GET /portfolio requests with the open positions
func (h *APIHandler) PortfolioPage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	positions, err := h.holdings.OpenPositions(ctx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "portfolio.html", pageData{
		Title:     "Portfolio",
		Page:      fromPortfolio,
		Back:      homeLink,
		Positions: positions,
	})
}

// StrategyPage handles GET /strategy requests with the ranked coins
func (h *APIHandler) StrategyPage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	ranked, err := h.holdings.RankedCoins(ctx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "strategy.html", pageData{
		Title:  "Strategy",
		Page:   fromStrategy,
		Back:   homeLink,
		Ranked: ranked,
	})
}

// CoinPage handles GET /coin?symbol=&from= requests. The symbol's view is opened
// before the page is served so the first snapshot already holds its state.
func (h *APIHandler) CoinPage(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		h.handleError(c, ports.ErrInvalidRequest, http.StatusBadRequest, "symbol is required")
		return
	}

	// The first load outlives a browser that navigates away mid-request.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), DefaultTimeout)
	defer cancel()

	if _, err := h.dashboard.OpenCoin(ctx, symbol); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "coin.html", pageData{
		Title:      symbol,
		Page:       app.CoinPage(symbol),
		Symbol:     symbol,
		Back:       backLink(c.DefaultQuery("from", fromPortfolio)),
		Timeframes: h.dashboard.Timeframes(),
		Elements:   elementIDs(),
	})
}

// SelectTimeframe handles POST /ui/coin/timeframe?symbol=&tf= requests
func (h *APIHandler) SelectTimeframe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol := strings.TrimSpace(c.Query("symbol"))
	tf := strings.TrimSpace(c.Query("tf"))
	if symbol == "" || tf == "" {
		h.handleError(c, ports.ErrInvalidRequest, http.StatusBadRequest, "symbol and tf are required")
		return
	}

	err := h.dashboard.SelectTimeframe(ctx, symbol, tf)
	if errors.Is(err, ports.ErrInvalidRequest) || errors.Is(err, ports.ErrUnknownSymbol) {
		h.handleServiceError(c, err)
		return
	}
	// A failed load has already been rendered as a placeholder on the page.
	if err != nil {
		h.logger.Warn(ctx, "Timeframe load failed", map[string]interface{}{
			"request_id": requestIDFrom(c),
			"symbol":     symbol,
			"tf":         tf,
			"error":      err.Error(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": symbol,
		"tf":     tf,
		"loaded": err == nil,
	})
}

// Stream handles GET /ws?page= websocket upgrades
func (h *APIHandler) Stream(c *gin.Context) {
	page := c.Query("page")
	if page == "" {
		h.handleError(c, ports.ErrInvalidRequest, http.StatusBadRequest, "page is required")
		return
	}

	if err := h.pages.ServeWS(c.Writer, c.Request, page); err != nil {
		h.logger.Debug(c.Request.Context(), "Page stream ended", map[string]interface{}{
			"page":  page,
			"error": err.Error(),
		})
	}
}

// PnlPage handles GET /pnl requests with a server-rendered account value chart
func (h *APIHandler) PnlPage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	dates, values, err := h.portfolio.ValueHistory(ctx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := valueChart(dates, values).Render(&buf); err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func valueChart(dates []string, values []float64) *charts.Line {
	points := make([]opts.LineData, len(values))
	for i, v := range values {
		points[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Account Value",
			Width:     "100%",
			Height:    "500px",
			Theme:     "dark",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Account Value (USD)", Left: "center", Top: "20"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "USD",
			NameLocation: "end",
			NameGap:      20,
			SplitLine:    &opts.SplitLine{Show: true},
		}),
		charts.WithGridOpts(opts.Grid{Left: "6%", Right: "5%", Top: "15%", Bottom: "15%", ContainLabel: true}),
	)
	line.SetXAxis(dates).
		AddSeries("Value", points).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: true, ShowSymbol: false}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.15, Color: "#5ab0ff"}),
		)
	return line
}

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/metrics"
	"cryptoDashboard/internal/ports"
)

// CoinData handles GET /coin_data?symbol=&tf= requests
func (h *APIHandler) CoinData(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		h.handleError(c, ports.ErrInvalidRequest, http.StatusBadRequest, "symbol is required")
		return
	}
	tf := c.DefaultQuery("tf", domain.DefaultTimeframe)

	payload, err := h.coins.GetCoinData(ctx, symbol, tf)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// ChartData handles GET /chart_data requests
func (h *APIHandler) ChartData(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	payload, err := h.portfolio.ChartData(ctx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// Assets handles GET /assets_usd requests
func (h *APIHandler) Assets(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	snap, err := h.portfolio.Assets(ctx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// HealthCheck handles GET /health requests
func (h *APIHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	})
}

// Metrics handles GET /metrics requests
func (h *APIHandler) Metrics(c *gin.Context) {
	metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// handleServiceError maps a service error onto its HTTP status.
func (h *APIHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrInvalidRequest):
		h.handleError(c, err, http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrUnknownSymbol):
		h.handleError(c, err, http.StatusNotFound, err.Error())
	case errors.Is(err, ports.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		h.handleError(c, err, http.StatusGatewayTimeout, "Request timed out")
	default:
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
	}
}

// handleError logs the error and sends the JSON error body
func (h *APIHandler) handleError(c *gin.Context, err error, statusCode int, userMessage string) {
	requestID := requestIDFrom(c)

	fields := map[string]interface{}{
		"request_id":  requestID,
		"method":      c.Request.Method,
		"path":        c.Request.URL.Path,
		"status_code": statusCode,
	}
	if statusCode >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), err, "API error", fields)
	} else {
		fields["error"] = err.Error()
		h.logger.Warn(c.Request.Context(), "API request rejected", fields)
	}

	c.JSON(statusCode, gin.H{
		"error":      userMessage,
		"request_id": requestID,
	})
}

func requestIDFrom(c *gin.Context) string {
	if id, ok := c.Get(RequestIDContextKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return "unknown"
}

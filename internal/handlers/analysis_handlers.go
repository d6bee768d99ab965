package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Solmidey/base-gas-coach/internal/coach"

	"github.com/gin-gonic/gin"
)

// AnalysisService runs the gas-efficiency pipeline for one wallet.
type AnalysisService interface {
	Analyze(ctx context.Context, address, period string) (*coach.Analysis, error)
}

// AnalysisHandler serves the wallet analysis endpoint.
type AnalysisHandler struct {
	service AnalysisService
}

// NewAnalysisHandler creates an AnalysisHandler. service may be nil when
// the explorer credential is absent; requests then fail with a 500 until
// the operator configures it.
func NewAnalysisHandler(service AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// AnalyzeWallet handles GET /api/v1/analysis?address=…&period=…
// Responds with the analysis payload, or {error} with 400 for bad input,
// 500 for missing configuration, 502 for explorer failures.
func (h *AnalysisHandler) AnalyzeWallet(c *gin.Context) {
	if h.service == nil {
		sendError(c, http.StatusInternalServerError,
			"BASESCAN_API_KEY is not set on the server",
			&coach.ConfigError{Reason: "explorer credential missing"})
		return
	}

	address := c.Query("address")
	period := c.Query("period")

	analysis, err := h.service.Analyze(c.Request.Context(), address, period)
	if err != nil {
		var inputErr *coach.InputError
		var configErr *coach.ConfigError
		var externalErr *coach.ExternalServiceError

		switch {
		case errors.As(err, &inputErr):
			sendError(c, http.StatusBadRequest, inputErr.Reason, err)
		case errors.As(err, &configErr):
			sendError(c, http.StatusInternalServerError, configErr.Reason, err)
		case errors.As(err, &externalErr):
			sendError(c, http.StatusBadGateway, "Failed to reach Basescan", err)
		default:
			sendError(c, http.StatusInternalServerError, "Unexpected error analyzing Base history", err)
		}
		return
	}

	sendSuccess(c, http.StatusOK, analysis)
}

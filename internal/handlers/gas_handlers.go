package handlers

import (
	"context"
	"net/http"

	"github.com/Solmidey/base-gas-coach/internal/gasprice"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// GasPriceService produces the current gas snapshot.
type GasPriceService interface {
	Current(ctx context.Context) (gasprice.Snapshot, error)
}

// GasHandler serves the live gas price endpoint.
type GasHandler struct {
	service GasPriceService
}

// NewGasHandler creates a GasHandler. service may be nil when no RPC
// endpoint is configured; the endpoint then reports 503.
func NewGasHandler(service GasPriceService) *GasHandler {
	return &GasHandler{service: service}
}

// CurrentGas handles GET /api/v1/gas
func (h *GasHandler) CurrentGas(c *gin.Context) {
	if h.service == nil {
		sendError(c, http.StatusServiceUnavailable,
			"Gas price source is not configured",
			errors.New("BASE_RPC_URL missing"))
		return
	}

	snapshot, err := h.service.Current(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusBadGateway, "Failed to read gas price from Base RPC", err)
		return
	}

	sendSuccess(c, http.StatusOK, snapshot)
}

package api

import (
	"errors"
	"net/http"

	"PriceBoard/internal/ingest"
	"PriceBoard/internal/usecase"
	xhttp "PriceBoard/pkg/http"
	xlogger "PriceBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PricesHandler serves the candle series endpoints.
type PricesHandler struct {
	logger *xlogger.Logger
	prices *usecase.PricesUseCase
}

func NewPricesHandler(logger *xlogger.Logger, prices *usecase.PricesUseCase) *PricesHandler {
	return &PricesHandler{logger: logger, prices: prices}
}

func (h *PricesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/symbols", h.Symbols)
	g.GET("/prices", h.Prices)
	g.POST("/prices/reload", h.Reload)
}

func (h *PricesHandler) Symbols(c echo.Context) error {
	symbols, err := h.prices.ListSymbols(c.Request().Context())
	if err != nil {
		h.logger.Error("list symbols failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, symbols)
}

func (h *PricesHandler) Prices(c echo.Context) error {
	res, err := h.prices.GetPrices(c.Request().Context(), c.QueryParam("symbol"))
	if err != nil {
		h.logger.Error("get prices failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PricesHandler) Reload(c echo.Context) error {
	if err := h.prices.Reload(c.Request().Context()); err != nil {
		h.logger.Error("reload prices failed", xlogger.Error(err))
		if errors.Is(err, ingest.ErrMissingColumns) {
			return xhttp.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		}
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.NoContentResponse(c)
}

package api

import (
	xhttp "PriceBoard/pkg/http"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the API handlers behind one route registration.
type Handlers struct {
	Prices   *PricesHandler
	Settings *SettingsHandler
}

func (h *Handlers) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", h.Health)
	h.Prices.RegisterRoutes(e)
	h.Settings.RegisterRoutes(e)
}

func (h *Handlers) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, xhttp.HealthBody{Status: "ok"})
}

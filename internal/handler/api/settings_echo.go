package api

import (
	"errors"
	"net/http"
	"strings"

	"PriceBoard/internal/domain/models"
	domrepo "PriceBoard/internal/domain/repository"
	"PriceBoard/internal/usecase"
	xhttp "PriceBoard/pkg/http"
	xlogger "PriceBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SettingsHandler serves the per-user preference endpoints.
type SettingsHandler struct {
	logger   *xlogger.Logger
	settings *usecase.SettingsUseCase
}

func NewSettingsHandler(logger *xlogger.Logger, settings *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{logger: logger, settings: settings}
}

func (h *SettingsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/settings")
	g.GET("/:userId", h.Get)
	g.PUT("/:userId", h.Put)
	g.DELETE("/:userId", h.Delete)
}

func (h *SettingsHandler) Get(c echo.Context) error {
	userID, ok := h.userID(c)
	if !ok {
		return xhttp.BadRequestResponse(c, "User ID is required.")
	}

	res, err := h.settings.Get(c.Request().Context(), userID)
	if errors.Is(err, domrepo.ErrNotFound) {
		return xhttp.NotFoundResponse(c, "Preferences not found.")
	}
	if errors.Is(err, usecase.ErrCorruptedPreferences) {
		h.logger.Error("stored preferences unparsable", xlogger.String("user_id", userID))
		return xhttp.ErrorResponse(c, http.StatusInternalServerError, "Corrupted preferences data.")
	}
	if err != nil {
		h.logger.Error("get settings failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SettingsHandler) Put(c echo.Context) error {
	userID, ok := h.userID(c)
	if !ok {
		return xhttp.BadRequestResponse(c, "User ID is required.")
	}

	req := &models.SettingsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	requestTime := c.Request().Header.Get("X-Request-Time")
	if err := h.settings.Put(c.Request().Context(), userID, req.Preferences, requestTime); err != nil {
		h.logger.Error("put settings failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.NoContentResponse(c)
}

func (h *SettingsHandler) Delete(c echo.Context) error {
	userID, ok := h.userID(c)
	if !ok {
		return xhttp.BadRequestResponse(c, "User ID is required.")
	}

	if err := h.settings.Delete(c.Request().Context(), userID); err != nil {
		h.logger.Error("delete settings failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.NoContentResponse(c)
}

func (h *SettingsHandler) userID(c echo.Context) (string, bool) {
	userID := strings.TrimSpace(c.Param("userId"))
	return userID, userID != ""
}

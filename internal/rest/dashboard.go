package rest

import (
	"context"
	"net/http"
	"smartMarket/domain"
	"smartMarket/pkg/logger"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	DashboardHandler struct {
		dashboardService DashboardService
		timeout          time.Duration
	}

	DashboardService interface {
		StoreAnalytics(ctx context.Context, ownerID uint, days int) ([]domain.StoreAnalytics, error)
		ProductPerformance(ctx context.Context, ownerID uint, days int) ([]domain.ProductPerformance, error)
	}
)

func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		timeout:          10 * time.Second,
	}
}

func (h *DashboardHandler) StoreAnalytics(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	days := 0
	if err := echo.QueryParamsBinder(c).Int("days", &days).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid days"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.dashboardService.StoreAnalytics(ctx, userID, days)
	if err != nil {
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to fetch store analytics", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to fetch store analytics"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}

func (h *DashboardHandler) ProductPerformance(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	days := 0
	if err := echo.QueryParamsBinder(c).Int("days", &days).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid days"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.dashboardService.ProductPerformance(ctx, userID, days)
	if err != nil {
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to fetch product performance", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to fetch product performance"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}

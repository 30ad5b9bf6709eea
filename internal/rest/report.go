package rest

import (
	"context"
	"fmt"
	"net/http"
	"smartMarket/business/reports"
	"smartMarket/domain"
	"smartMarket/pkg/logger"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ReportHandler struct {
		validate      *validator.Validate
		reportService ReportService
		timeout       time.Duration
	}

	ReportService interface {
		Generate(ctx context.Context, userID uint, req reports.GenerateRequest) (*domain.GeneratedReport, error)
		List(ctx context.Context, userID uint) ([]domain.GeneratedReport, error)
		Get(ctx context.Context, userID uint, reportID uint64) (*domain.GeneratedReport, error)
		GetStatus(ctx context.Context, userID uint, reportID uint64) (reports.Status, error)
		DownloadReport(ctx context.Context, userID uint, reportID uint64, format string) (reports.Download, error)
		CreateSchedule(ctx context.Context, userID uint, reportType, frequency string, parameters map[string]any) (*domain.ReportSchedule, error)
		ListSchedules(ctx context.Context, userID uint) ([]domain.ReportSchedule, error)
	}

	GenerateReportRequest struct {
		ReportType string         `json:"report_type" validate:"required"`
		StoreID    *uint64        `json:"store_id"`
		DateFrom   time.Time      `json:"date_from" validate:"required"`
		DateTo     time.Time      `json:"date_to" validate:"required"`
		Parameters map[string]any `json:"parameters"`
	}

	CreateScheduleRequest struct {
		ReportType string         `json:"report_type" validate:"required"`
		Frequency  string         `json:"frequency" validate:"required,oneof=daily weekly monthly quarterly"`
		Parameters map[string]any `json:"parameters"`
	}
)

func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{
		validate:      validator.New(),
		reportService: reportService,
		timeout:       60 * time.Second,
	}
}

func (h *ReportHandler) Generate(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.reportService.Generate(ctx, userID, reports.GenerateRequest{
		ReportType: req.ReportType,
		StoreID:    req.StoreID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Parameters: req.Parameters,
	})
	if err != nil {
		switch err.Error() {
		case "report type is required", "date_to must not be before date_from":
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		case "report generation failed":
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to generate report", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to generate report"})
	}

	return c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) List(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reportList, err := h.reportService.List(ctx, userID)
	if err != nil {
		logger.Error("Failed to list reports", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to list reports"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reportList))
}

func (h *ReportHandler) Get(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid report id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.reportService.Get(ctx, userID, reportID)
	if err != nil {
		if err.Error() == "report not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get report", "report_id", reportID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get report"})
	}

	return c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Status(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid report id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	status, err := h.reportService.GetStatus(ctx, userID, reportID)
	if err != nil {
		if err.Error() == "report not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get report status", "report_id", reportID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get report status"})
	}

	return c.JSON(http.StatusOK, status)
}

func (h *ReportHandler) Download(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid report id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	download, err := h.reportService.DownloadReport(ctx, userID, reportID, c.QueryParam("format"))
	if err != nil {
		if err.Error() == "report not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to download report", "report_id", reportID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to download report"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, download.Filename))

	return c.Blob(http.StatusOK, download.ContentType, download.Content)
}

func (h *ReportHandler) ListSchedules(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	schedules, err := h.reportService.ListSchedules(ctx, userID)
	if err != nil {
		logger.Error("Failed to list report schedules", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to list report schedules"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(schedules))
}

func (h *ReportHandler) CreateSchedule(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	schedule, err := h.reportService.CreateSchedule(ctx, userID, req.ReportType, req.Frequency, req.Parameters)
	if err != nil {
		if err.Error() == "report type is required" || err.Error() == "frequency is required" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to create report schedule", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to create report schedule"})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(schedule))
}

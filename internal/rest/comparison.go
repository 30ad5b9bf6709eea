package rest

import (
	"context"
	"net/http"
	"smartMarket/business/comparison"
	"smartMarket/domain"
	"smartMarket/pkg/logger"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ComparisonHandler struct {
		validate          *validator.Validate
		comparisonService ComparisonService
		timeout           time.Duration
	}

	ComparisonService interface {
		CompareProducts(ctx context.Context, userID *uint, productIDs []uint64, criteria []string, includeRecommendation bool) (*domain.ProductComparison, error)
		CompareStores(ctx context.Context, userID *uint, storeIDs []uint64, comparisonType string, categoryID *uint64) (*domain.StoreComparison, error)
		GetHistory(ctx context.Context, userID uint) (comparison.History, error)
	}

	CompareProductsRequest struct {
		ProductIDs              []uint64 `json:"product_ids" validate:"required,min=2,max=5,dive,required"`
		Criteria                []string `json:"criteria"`
		IncludeAIRecommendation *bool    `json:"include_ai_recommendation"`
	}

	CompareStoresRequest struct {
		StoreIDs       []uint64 `json:"store_ids" validate:"required,min=2,max=5,dive,required"`
		ComparisonType string   `json:"comparison_type" validate:"required"`
		CategoryID     *uint64  `json:"category_id"`
	}
)

func NewComparisonHandler(comparisonService ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{
		validate:          validator.New(),
		comparisonService: comparisonService,
		timeout:           30 * time.Second,
	}
}

func (h *ComparisonHandler) CompareProducts(c echo.Context) error {
	var req CompareProductsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	includeRecommendation := true
	if req.IncludeAIRecommendation != nil {
		includeRecommendation = *req.IncludeAIRecommendation
	}

	var userID *uint
	if uid, ok := c.Get("user_id").(uint); ok {
		userID = &uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.comparisonService.CompareProducts(ctx, userID, req.ProductIDs, req.Criteria, includeRecommendation)
	if err != nil {
		if err.Error() == "one or more products not found or inactive" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to compare products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to compare products"})
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *ComparisonHandler) CompareStores(c echo.Context) error {
	var req CompareStoresRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var userID *uint
	if uid, ok := c.Get("user_id").(uint); ok {
		userID = &uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.comparisonService.CompareStores(ctx, userID, req.StoreIDs, req.ComparisonType, req.CategoryID)
	if err != nil {
		if err.Error() == "one or more stores not found or inactive" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to compare stores", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to compare stores"})
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *ComparisonHandler) History(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "Authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	history, err := h.comparisonService.GetHistory(ctx, userID)
	if err != nil {
		logger.Error("Failed to fetch comparison history", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to fetch comparison history"})
	}

	return c.JSON(http.StatusOK, history)
}

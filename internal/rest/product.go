package rest

import (
	"context"
	"net/http"
	"smartMarket/domain"
	"smartMarket/internal/repository/postgres"
	"smartMarket/pkg/logger"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ProductHandler struct {
		validate       *validator.Validate
		catalogService CatalogService
		timeout        time.Duration
	}

	CatalogService interface {
		ListProducts(ctx context.Context, filter postgres.ProductFilter) ([]domain.Product, error)
		GetProduct(ctx context.Context, slug string, userID *uint) (*domain.Product, error)
		ToggleLike(ctx context.Context, slug string, userID uint) (bool, error)
		SimilarProducts(ctx context.Context, slug string, limit int) (*domain.Product, []domain.ScoredProduct, error)
		BestProducts(ctx context.Context, categoryID *uint64, limit int) ([]domain.ScoredProduct, error)
		ListCategories(ctx context.Context) ([]domain.Category, error)
		ListBrands(ctx context.Context) ([]domain.Brand, error)
		ListStores(ctx context.Context) ([]domain.Store, error)
		GetStore(ctx context.Context, slug string) (*domain.Store, error)
	}

	ProductListQuery struct {
		Search     string   `query:"search"`
		CategoryID *uint64  `query:"category_id"`
		BrandID    *uint64  `query:"brand_id"`
		StoreID    *uint64  `query:"store_id"`
		MinPrice   *float64 `query:"min_price" validate:"omitempty,gte=0"`
		MaxPrice   *float64 `query:"max_price" validate:"omitempty,gte=0"`
		InStock    *bool    `query:"in_stock"`
		OrderBy    string   `query:"ordering"`
		Limit      int      `query:"limit" validate:"omitempty,gt=0,lte=100"`
		Offset     int      `query:"offset" validate:"omitempty,gte=0"`
	}

	BestProductsQuery struct {
		CategoryID *uint64 `query:"category_id"`
		Limit      int     `query:"limit" validate:"omitempty,gt=0,lte=50"`
	}
)

func NewProductHandler(catalogService CatalogService) *ProductHandler {
	return &ProductHandler{
		validate:       validator.New(),
		catalogService: catalogService,
		timeout:        10 * time.Second,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	var q ProductListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.catalogService.ListProducts(ctx, postgres.ProductFilter{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		BrandID:    q.BrandID,
		StoreID:    q.StoreID,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		InStock:    q.InStock,
		OrderBy:    q.OrderBy,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		logger.Error("Failed to list products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to list products"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products":    products,
		"total_count": len(products),
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	slug := c.Param("slug")

	var userID *uint
	if uid, ok := c.Get("user_id").(uint); ok {
		userID = &uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.catalogService.GetProduct(ctx, slug, userID)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get product", "slug", slug, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get product"})
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ToggleLike(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	slug := c.Param("slug")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	liked, err := h.catalogService.ToggleLike(ctx, slug, userID)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to toggle product like", "slug", slug, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to toggle like"})
	}

	message := "Product liked"
	if !liked {
		message = "Product unliked"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"liked":   liked,
		"message": message,
	})
}

func (h *ProductHandler) SimilarProducts(c echo.Context) error {
	slug := c.Param("slug")

	limit := 0
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, similar, err := h.catalogService.SimilarProducts(ctx, slug, limit)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get similar products", "slug", slug, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get similar products"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product":          product,
		"similar_products": similar,
	})
}

func (h *ProductHandler) BestProducts(c echo.Context) error {
	var q BestProductsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	best, err := h.catalogService.BestProducts(ctx, q.CategoryID, q.Limit)
	if err != nil {
		logger.Error("Failed to get best products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get best products"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"best_products": best,
		"algorithm_info": map[string]string{
			"description": "AI-determined best products based on ratings, reviews, and user behavior",
		},
	})
}

func (h *ProductHandler) ListCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to list categories"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *ProductHandler) ListBrands(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	brands, err := h.catalogService.ListBrands(ctx)
	if err != nil {
		logger.Error("Failed to list brands", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to list brands"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"brands": brands})
}

func (h *ProductHandler) ListStores(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stores, err := h.catalogService.ListStores(ctx)
	if err != nil {
		logger.Error("Failed to list stores", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to list stores"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"stores": stores})
}

func (h *ProductHandler) GetStore(c echo.Context) error {
	slug := c.Param("slug")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, err := h.catalogService.GetStore(ctx, slug)
	if err != nil {
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get store", "slug", slug, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to get store"})
	}

	return c.JSON(http.StatusOK, store)
}

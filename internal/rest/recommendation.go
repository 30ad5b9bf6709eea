package rest

import (
	"context"
	"net/http"
	"smartMarket/business/recommendation"
	"smartMarket/domain"
	"smartMarket/pkg/logger"
	"smartMarket/pkg/metrics"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate    *validator.Validate
		recoService RecommendationService
		timeout     time.Duration
	}

	RecommendationService interface {
		GeneralRecommendations(ctx context.Context, userID *uint, req recommendation.Request) (*domain.RecommendationResponse, bool, error)
		PersonalizedRecommendations(ctx context.Context, userID uint, req recommendation.Request) (*domain.RecommendationResponse, bool, error)
		TrackInteraction(ctx context.Context, sessionID uint, productID uint64, action string, timestamp *time.Time) error
		RealtimePersonalization(ctx context.Context, userID uint, sessionID string) (map[string]any, error)
	}

	RecommendationQuery struct {
		Limit           int      `query:"limit" validate:"omitempty,gt=0,lte=50"`
		CategoryID      *uint64  `query:"category_id"`
		ExcludeProducts []uint64 `query:"exclude_products"`
		SessionID       string   `query:"session_id"`
	}

	TrackInteractionRequest struct {
		SessionID uint       `json:"session_id" validate:"required"`
		ProductID uint64     `json:"product_id" validate:"required"`
		Action    string     `json:"action" validate:"required"`
		Timestamp *time.Time `json:"timestamp"`
	}
)

func NewRecommendationHandler(recoService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:    validator.New(),
		recoService: recoService,
		timeout:     15 * time.Second,
	}
}

func (h *RecommendationHandler) General(c echo.Context) error {
	start := time.Now()

	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	// anonymous callers are allowed here
	var userID *uint
	if uid, ok := c.Get("user_id").(uint); ok {
		userID = &uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	response, cacheHit, err := h.recoService.GeneralRecommendations(ctx, userID, recommendation.Request{
		Limit:           q.Limit,
		CategoryID:      q.CategoryID,
		ExcludeProducts: q.ExcludeProducts,
		SessionID:       q.SessionID,
	})
	if err != nil {
		logger.Error("Failed to generate general recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to generate recommendations"})
	}

	observeRecommendation(domain.RecommendationTypeGeneral, cacheHit, start)

	return c.JSON(http.StatusOK, response)
}

func (h *RecommendationHandler) Personalized(c echo.Context) error {
	start := time.Now()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	response, cacheHit, err := h.recoService.PersonalizedRecommendations(ctx, userID, recommendation.Request{
		Limit:           q.Limit,
		CategoryID:      q.CategoryID,
		ExcludeProducts: q.ExcludeProducts,
		SessionID:       q.SessionID,
	})
	if err != nil {
		logger.Error("Failed to generate personalized recommendations", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to generate personalized recommendations"})
	}

	observeRecommendation(domain.RecommendationTypePersonalized, cacheHit, start)

	return c.JSON(http.StatusOK, response)
}

func (h *RecommendationHandler) Track(c echo.Context) error {
	var req TrackInteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err := h.recoService.TrackInteraction(ctx, req.SessionID, req.ProductID, req.Action, req.Timestamp)
	if err != nil {
		if err.Error() == "recommendation not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to track recommendation interaction", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to track interaction"})
	}

	metrics.RecommendationFeedback.WithLabelValues(req.Action).Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK("interaction recorded"))
}

func (h *RecommendationHandler) Realtime(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "session_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	data, err := h.recoService.RealtimePersonalization(ctx, userID, sessionID)
	if err != nil {
		logger.Error("Failed to generate realtime personalization", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "Failed to generate personalization"})
	}

	return c.JSON(http.StatusOK, data)
}

func observeRecommendation(recommendationType string, cacheHit bool, start time.Time) {
	cacheLabel := "miss"
	if cacheHit {
		cacheLabel = "hit"
	}
	metrics.RecommendationRequests.WithLabelValues(recommendationType, cacheLabel).Inc()
	metrics.RecommendationLatency.WithLabelValues(recommendationType).Observe(time.Since(start).Seconds())
}

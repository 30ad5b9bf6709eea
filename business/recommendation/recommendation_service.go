package recommendation

import (
	"context"
	"errors"
	"fmt"
	"smartMarket/domain"
	"smartMarket/pkg/logger"
	"time"

	"github.com/google/uuid"
)

// Cache TTLs. Personalized entries expire sooner because they reflect
// more volatile per-user state.
const (
	GeneralCacheTTL      = 900 * time.Second
	PersonalizedCacheTTL = 300 * time.Second
)

const (
	ActionClick     = "click"
	ActionAddToCart = "add_to_cart"
	ActionPurchase  = "purchase"
)

// RecommendationEngine is the opaque external scorer. Its internals are
// not visible to this codebase.
type RecommendationEngine interface {
	GeneralRecommendations(ctx context.Context, limit int, categoryID *uint64, excludeProducts []uint64) ([]domain.ScoredProduct, error)
	PersonalizedRecommendations(ctx context.Context, userID uint, limit int, categoryID *uint64, excludeProducts []uint64) ([]domain.ScoredProduct, error)
	RealtimePersonalization(ctx context.Context, userID uint, sessionID string) (map[string]any, error)
}

type RecommendationRepository interface {
	CreateSession(ctx context.Context, session *domain.RecommendationSession) error
	CreateResults(ctx context.Context, results []domain.RecommendationResult) error
	FindResult(ctx context.Context, sessionID uint, productID uint64) (domain.RecommendationResult, error)
	UpdateResult(ctx context.Context, result *domain.RecommendationResult) error
}

type ResponseCache interface {
	Get(ctx context.Context, key string) (*domain.RecommendationResponse, error)
	Set(ctx context.Context, key string, response *domain.RecommendationResponse, ttl time.Duration) error
}

// Request carries the validated parameters of one recommendation call.
type Request struct {
	Limit           int
	CategoryID      *uint64
	ExcludeProducts []uint64
	SessionID       string
}

type recommendationService struct {
	engine     RecommendationEngine
	recoRepo   RecommendationRepository
	cache      ResponseCache
	timeSource func() time.Time
}

func NewRecommendationService(
	engine RecommendationEngine,
	recoRepo RecommendationRepository,
	cache ResponseCache,
) *recommendationService {
	return &recommendationService{
		engine:     engine,
		recoRepo:   recoRepo,
		cache:      cache,
		timeSource: time.Now,
	}
}

// GeneralRecommendations serves trending/popular products. Anonymous
// callers are allowed, so the cache key depends on the limit only.
func (s *recommendationService) GeneralRecommendations(ctx context.Context, userID *uint, req Request) (*domain.RecommendationResponse, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("context error: %w", err)
	}

	if req.Limit <= 0 {
		req.Limit = 10
	}

	cacheKey := fmt.Sprintf("recommendations:general:%d", req.Limit)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		// a broken cache must not take recommendations down
		logger.Error("Failed to read recommendation cache", "key", cacheKey, "error", err)
	}
	if cached != nil {
		return cached, true, nil
	}

	fetch := func(ctx context.Context) ([]domain.ScoredProduct, error) {
		return s.engine.GeneralRecommendations(ctx, req.Limit, req.CategoryID, req.ExcludeProducts)
	}

	response, err := s.generate(ctx, userID, domain.RecommendationTypeGeneral, req, fetch, algorithmInfoGeneral())
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, cacheKey, response, GeneralCacheTTL); err != nil {
		logger.Error("Failed to cache recommendations", "key", cacheKey, "error", err)
	}

	return response, false, nil
}

// PersonalizedRecommendations requires an authenticated user; the cache
// key is additionally scoped by user identity.
func (s *recommendationService) PersonalizedRecommendations(ctx context.Context, userID uint, req Request) (*domain.RecommendationResponse, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		return nil, false, errors.New("user is required")
	}

	if req.Limit <= 0 {
		req.Limit = 10
	}

	cacheKey := fmt.Sprintf("recommendations:personalized:%d:%d", userID, req.Limit)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		logger.Error("Failed to read recommendation cache", "key", cacheKey, "error", err)
	}
	if cached != nil {
		return cached, true, nil
	}

	fetch := func(ctx context.Context) ([]domain.ScoredProduct, error) {
		return s.engine.PersonalizedRecommendations(ctx, userID, req.Limit, req.CategoryID, req.ExcludeProducts)
	}

	response, err := s.generate(ctx, &userID, domain.RecommendationTypePersonalized, req, fetch, algorithmInfoPersonalized())
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, cacheKey, response, PersonalizedCacheTTL); err != nil {
		logger.Error("Failed to cache recommendations", "key", cacheKey, "error", err)
	}

	return response, false, nil
}

// generate runs the cache-miss path: call the engine, persist one session
// plus one result row per recommendation, compose the response.
func (s *recommendationService) generate(
	ctx context.Context,
	userID *uint,
	recommendationType string,
	req Request,
	fetch func(ctx context.Context) ([]domain.ScoredProduct, error),
	info domain.AlgorithmInfo,
) (*domain.RecommendationResponse, error) {
	recommendations, err := fetch(ctx)
	if err != nil {
		logger.Error("Recommendation engine call failed", "type", recommendationType, "error", err)
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	clientSessionID := req.SessionID
	if clientSessionID == "" {
		clientSessionID = uuid.NewString()
	}

	session := domain.RecommendationSession{
		UserID:             userID,
		SessionID:          clientSessionID,
		RecommendationType: recommendationType,
	}
	if err := s.recoRepo.CreateSession(ctx, &session); err != nil {
		logger.Error("Failed to create recommendation session", "error", err)
		return nil, err
	}

	results := make([]domain.RecommendationResult, 0, len(recommendations))
	for idx, rec := range recommendations {
		results = append(results, domain.RecommendationResult{
			SessionID:     session.ID,
			ProductID:     rec.ProductID,
			Score:         rec.Score,
			Position:      idx + 1,
			AlgorithmUsed: rec.Algorithm,
		})
	}
	if err := s.recoRepo.CreateResults(ctx, results); err != nil {
		logger.Error("Failed to store recommendation results", "session_id", session.ID, "error", err)
		return nil, err
	}

	return &domain.RecommendationResponse{
		SessionID:       session.ID,
		Recommendations: recommendations,
		TotalCount:      len(recommendations),
		AlgorithmInfo:   info,
	}, nil
}

// TrackInteraction records feedback against the unique (session, product)
// result row. Unrecognized actions are accepted and leave the row
// untouched, matching the behavior callers already rely on.
func (s *recommendationService) TrackInteraction(ctx context.Context, sessionID uint, productID uint64, action string, timestamp *time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if action == "" {
		return errors.New("action is required")
	}

	result, err := s.recoRepo.FindResult(ctx, sessionID, productID)
	if err != nil {
		return err
	}

	ts := s.timeSource()
	if timestamp != nil {
		ts = *timestamp
	}

	switch action {
	case ActionClick:
		result.WasClicked = true
		result.ClickTimestamp = &ts
	case ActionAddToCart:
		result.WasAddedToCart = true
	case ActionPurchase:
		result.WasPurchased = true
	default:
		logger.Warn("Unrecognized recommendation action ignored", "action", action, "session_id", sessionID)
		return nil
	}

	if err := s.recoRepo.UpdateResult(ctx, &result); err != nil {
		return err
	}

	logger.Info("Recommendation interaction recorded",
		"action", action, "product_id", productID, "session_id", sessionID)

	return nil
}

// RealtimePersonalization is a straight passthrough to the engine.
func (s *recommendationService) RealtimePersonalization(ctx context.Context, userID uint, sessionID string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if sessionID == "" {
		return nil, errors.New("session_id is required")
	}

	data, err := s.engine.RealtimePersonalization(ctx, userID, sessionID)
	if err != nil {
		logger.Error("Realtime personalization failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to generate personalization: %w", err)
	}

	return data, nil
}

func algorithmInfoGeneral() domain.AlgorithmInfo {
	return domain.AlgorithmInfo{
		Type:        domain.RecommendationTypeGeneral,
		Description: "Trending and popular products",
	}
}

func algorithmInfoPersonalized() domain.AlgorithmInfo {
	return domain.AlgorithmInfo{
		Type:        domain.RecommendationTypePersonalized,
		Description: "Based on your preferences and behavior",
	}
}

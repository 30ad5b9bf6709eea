package comparison

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"smartMarket/domain"
	"smartMarket/pkg/logger"

	"gorm.io/datatypes"
)

const historyLimit = 10

// ComparisonEngine is the opaque external analyzer.
type ComparisonEngine interface {
	CompareProducts(ctx context.Context, products []domain.Product, criteria []string, includeRecommendation bool) (domain.ComparisonOutcome, error)
	CompareStores(ctx context.Context, stores []domain.Store, comparisonType string, categoryID *uint64) (map[string]any, error)
}

type ComparisonRepository interface {
	CreateProductComparison(ctx context.Context, comparison *domain.ProductComparison) error
	CreateStoreComparison(ctx context.Context, comparison *domain.StoreComparison) error
	FindProductComparisonsByUser(ctx context.Context, userID uint, limit int) ([]domain.ProductComparison, error)
	FindStoreComparisonsByUser(ctx context.Context, userID uint, limit int) ([]domain.StoreComparison, error)
}

type ProductRepository interface {
	FindActiveByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

type StoreRepository interface {
	FindActiveByIDs(ctx context.Context, ids []uint64) ([]domain.Store, error)
}

type History struct {
	ProductComparisons []domain.ProductComparison `json:"product_comparisons"`
	StoreComparisons   []domain.StoreComparison   `json:"store_comparisons"`
}

type comparisonService struct {
	engine         ComparisonEngine
	comparisonRepo ComparisonRepository
	productRepo    ProductRepository
	storeRepo      StoreRepository
}

func NewComparisonService(
	engine ComparisonEngine,
	comparisonRepo ComparisonRepository,
	productRepo ProductRepository,
	storeRepo StoreRepository,
) *comparisonService {
	return &comparisonService{
		engine:         engine,
		comparisonRepo: comparisonRepo,
		productRepo:    productRepo,
		storeRepo:      storeRepo,
	}
}

// CompareProducts validates that every requested product exists and is
// active, delegates the analysis, and persists exactly one comparison row
// referencing exactly the submitted products.
func (s *comparisonService) CompareProducts(ctx context.Context, userID *uint, productIDs []uint64, criteria []string, includeRecommendation bool) (*domain.ProductComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindActiveByIDs(ctx, productIDs)
	if err != nil {
		logger.Error("Failed to load products for comparison", "error", err)
		return nil, err
	}

	if len(products) != len(productIDs) {
		return nil, errors.New("one or more products not found or inactive")
	}

	outcome, err := s.engine.CompareProducts(ctx, products, criteria, includeRecommendation)
	if err != nil {
		logger.Error("Product comparison engine call failed", "error", err)
		return nil, fmt.Errorf("failed to compare products: %w", err)
	}

	criteriaJSON, err := json.Marshal(outcome.Criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comparison criteria: %w", err)
	}

	comparison := domain.ProductComparison{
		UserID:             userID,
		ComparisonCriteria: datatypes.JSON(criteriaJSON),
		AIAnalysis:         datatypes.JSONMap(outcome.Analysis),
		Products:           products,
	}

	if err := s.comparisonRepo.CreateProductComparison(ctx, &comparison); err != nil {
		logger.Error("Failed to save product comparison", "error", err)
		return nil, err
	}

	logger.Info("Product comparison created", "comparison_id", comparison.ID, "products", len(products))

	return &comparison, nil
}

func (s *comparisonService) CompareStores(ctx context.Context, userID *uint, storeIDs []uint64, comparisonType string, categoryID *uint64) (*domain.StoreComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if comparisonType == "" {
		return nil, errors.New("comparison type is required")
	}

	stores, err := s.storeRepo.FindActiveByIDs(ctx, storeIDs)
	if err != nil {
		logger.Error("Failed to load stores for comparison", "error", err)
		return nil, err
	}

	if len(stores) != len(storeIDs) {
		return nil, errors.New("one or more stores not found or inactive")
	}

	insights, err := s.engine.CompareStores(ctx, stores, comparisonType, categoryID)
	if err != nil {
		logger.Error("Store comparison engine call failed", "error", err)
		return nil, fmt.Errorf("failed to compare stores: %w", err)
	}

	comparison := domain.StoreComparison{
		UserID:         userID,
		ComparisonType: comparisonType,
		AIInsights:     datatypes.JSONMap(insights),
		Stores:         stores,
	}

	if err := s.comparisonRepo.CreateStoreComparison(ctx, &comparison); err != nil {
		logger.Error("Failed to save store comparison", "error", err)
		return nil, err
	}

	logger.Info("Store comparison created", "comparison_id", comparison.ID, "stores", len(stores))

	return &comparison, nil
}

// GetHistory returns the user's latest comparisons of both kinds.
func (s *comparisonService) GetHistory(ctx context.Context, userID uint) (History, error) {
	if err := ctx.Err(); err != nil {
		return History{}, fmt.Errorf("context error: %w", err)
	}

	productComparisons, err := s.comparisonRepo.FindProductComparisonsByUser(ctx, userID, historyLimit)
	if err != nil {
		logger.Error("Failed to fetch product comparison history", "user_id", userID, "error", err)
		return History{}, err
	}

	storeComparisons, err := s.comparisonRepo.FindStoreComparisonsByUser(ctx, userID, historyLimit)
	if err != nil {
		logger.Error("Failed to fetch store comparison history", "user_id", userID, "error", err)
		return History{}, err
	}

	return History{
		ProductComparisons: productComparisons,
		StoreComparisons:   storeComparisons,
	}, nil
}

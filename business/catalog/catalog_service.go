package catalog

import (
	"context"
	"errors"
	"fmt"
	"smartMarket/domain"
	"smartMarket/internal/repository/postgres"
	"smartMarket/pkg/logger"

	"gorm.io/datatypes"
)

// SearchEngine enhances free-text queries before they hit the database.
type SearchEngine interface {
	EnhanceSearchQuery(ctx context.Context, query string) (string, error)
}

// DiscoveryEngine serves AI-picked product lists.
type DiscoveryEngine interface {
	SimilarProducts(ctx context.Context, productID uint64, limit int) ([]domain.ScoredProduct, error)
	BestProducts(ctx context.Context, categoryID *uint64, limit int) ([]domain.ScoredProduct, error)
}

type ProductRepository interface {
	FindActive(ctx context.Context, filter postgres.ProductFilter) ([]domain.Product, error)
	FindActiveBySlug(ctx context.Context, slug string) (domain.Product, error)
	IncrementViewCount(ctx context.Context, id uint64) error
	ToggleLike(ctx context.Context, userID uint, productID uint64) (bool, error)
	SaveBehaviorLog(ctx context.Context, log domain.UserBehaviorLog) error
}

type StoreRepository interface {
	FindActive(ctx context.Context) ([]domain.Store, error)
	FindActiveBySlug(ctx context.Context, slug string) (domain.Store, error)
}

type CategoryRepository interface {
	FindActiveRoots(ctx context.Context) ([]domain.Category, error)
}

type BrandRepository interface {
	FindActive(ctx context.Context) ([]domain.Brand, error)
}

type catalogService struct {
	searchEngine    SearchEngine
	discoveryEngine DiscoveryEngine
	productRepo     ProductRepository
	storeRepo       StoreRepository
	categoryRepo    CategoryRepository
	brandRepo       BrandRepository
}

func NewCatalogService(
	searchEngine SearchEngine,
	discoveryEngine DiscoveryEngine,
	productRepo ProductRepository,
	storeRepo StoreRepository,
	categoryRepo CategoryRepository,
	brandRepo BrandRepository,
) *catalogService {
	return &catalogService{
		searchEngine:    searchEngine,
		discoveryEngine: discoveryEngine,
		productRepo:     productRepo,
		storeRepo:       storeRepo,
		categoryRepo:    categoryRepo,
		brandRepo:       brandRepo,
	}
}

// ListProducts applies the filter; a search term is first run through the
// AI query enhancer. Enhancement failures degrade to the raw query.
func (s *catalogService) ListProducts(ctx context.Context, filter postgres.ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if filter.Search != "" {
		enhanced, err := s.searchEngine.EnhanceSearchQuery(ctx, filter.Search)
		if err != nil {
			logger.Warn("Search enhancement failed, using raw query", "query", filter.Search, "error", err)
		} else {
			filter.Search = enhanced
		}
	}

	products, err := s.productRepo.FindActive(ctx, filter)
	if err != nil {
		logger.Error("Failed to list products", "error", err)
		return nil, err
	}

	return products, nil
}

// GetProduct returns the product, bumps its view counter and logs the view
// for the AI engine when the caller is authenticated.
func (s *catalogService) GetProduct(ctx context.Context, slug string, userID *uint) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.IncrementViewCount(ctx, product.ID); err != nil {
		logger.Error("Failed to increment view count", "product_id", product.ID, "error", err)
	}

	if userID != nil {
		s.logBehavior(ctx, *userID, product.ID, "view", "product_detail")
	}

	return &product, nil
}

// ToggleLike likes or unlikes the product and reports the resulting state.
func (s *catalogService) ToggleLike(ctx context.Context, slug string, userID uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		return false, errors.New("user is required")
	}

	product, err := s.productRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		return false, err
	}

	liked, err := s.productRepo.ToggleLike(ctx, userID, product.ID)
	if err != nil {
		logger.Error("Failed to toggle product like", "product_id", product.ID, "error", err)
		return false, err
	}

	action := "like"
	if !liked {
		action = "dislike"
	}
	s.logBehavior(ctx, userID, product.ID, action, "product_detail")

	return liked, nil
}

func (s *catalogService) SimilarProducts(ctx context.Context, slug string, limit int) (*domain.Product, []domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}

	product, err := s.productRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	similar, err := s.discoveryEngine.SimilarProducts(ctx, product.ID, limit)
	if err != nil {
		logger.Error("Similar products engine call failed", "product_id", product.ID, "error", err)
		return nil, nil, fmt.Errorf("failed to get similar products: %w", err)
	}

	return &product, similar, nil
}

func (s *catalogService) BestProducts(ctx context.Context, categoryID *uint64, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}

	best, err := s.discoveryEngine.BestProducts(ctx, categoryID, limit)
	if err != nil {
		logger.Error("Best products engine call failed", "error", err)
		return nil, fmt.Errorf("failed to get best products: %w", err)
	}

	return best, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.categoryRepo.FindActiveRoots(ctx)
}

func (s *catalogService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.brandRepo.FindActive(ctx)
}

func (s *catalogService) ListStores(ctx context.Context) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.storeRepo.FindActive(ctx)
}

func (s *catalogService) GetStore(ctx context.Context, slug string) (*domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	store, err := s.storeRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return &store, nil
}

// behavior logging is best effort; it must never fail the user request.
func (s *catalogService) logBehavior(ctx context.Context, userID uint, productID uint64, action, source string) {
	log := domain.UserBehaviorLog{
		UserID:     userID,
		ProductID:  productID,
		ActionType: action,
		Metadata:   datatypes.JSONMap{"source": source},
	}
	if err := s.productRepo.SaveBehaviorLog(ctx, log); err != nil {
		logger.Error("Failed to save behavior log", "product_id", productID, "error", err)
	}
}

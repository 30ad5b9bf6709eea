package postgres

import (
	"context"
	"errors"
	"fmt"
	"smartMarket/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// ProductFilter narrows the active-product listing.
type ProductFilter struct {
	CategoryID *uint64
	BrandID    *uint64
	StoreID    *uint64
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	Search     string
	OrderBy    string
	Limit      int
	Offset     int
}

var allowedProductOrderings = map[string]string{
	"name":        "name ASC",
	"price":       "price ASC",
	"-price":      "price DESC",
	"rating":      "average_rating DESC",
	"-created_at": "created_at DESC",
	"created_at":  "created_at ASC",
}

func (r *ProductRepository) FindActive(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Where("is_active = ?", true)

	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.BrandID != nil {
		q = q.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.StoreID != nil {
		q = q.Where("store_id = ?", *filter.StoreID)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.InStock != nil {
		q = q.Where("in_stock = ?", *filter.InStock)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR attributes::text ILIKE ?", like, like, like)
	}

	order := "created_at DESC"
	if o, ok := allowedProductOrderings[filter.OrderBy]; ok {
		order = o
	}
	q = q.Order(order)

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var products []domain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindActiveBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product
	err := r.DB.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, errors.New("product not found")
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// FindActiveByIDs returns only the rows that exist and are active; the
// caller compares counts to detect missing or inactive products.
func (r *ProductRepository) FindActiveByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Where("id IN ? AND is_active = ?", ids, true).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) IncrementViewCount(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	return nil
}

// ToggleLike creates the like row if absent, deletes it if present, and
// reports whether the product ends up liked.
func (r *ProductRepository) ToggleLike(ctx context.Context, userID uint, productID uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var existing domain.ProductLike
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error

	if err == nil {
		if err := r.DB.WithContext(ctx).Delete(&existing).Error; err != nil {
			return false, fmt.Errorf("failed to remove like: %w", err)
		}
		return false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	like := domain.ProductLike{UserID: userID, ProductID: productID}
	if err := r.DB.WithContext(ctx).Create(&like).Error; err != nil {
		return false, fmt.Errorf("failed to create like: %w", err)
	}

	return true, nil
}

func (r *ProductRepository) SaveBehaviorLog(ctx context.Context, log domain.UserBehaviorLog) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&log).Error; err != nil {
		return fmt.Errorf("failed to save behavior log: %w", err)
	}

	return nil
}

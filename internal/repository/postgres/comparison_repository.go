package postgres

import (
	"context"
	"fmt"
	"smartMarket/domain"

	"gorm.io/gorm"
)

type ComparisonRepository struct {
	DB *gorm.DB
}

func NewComparisonRepository(db *gorm.DB) *ComparisonRepository {
	return &ComparisonRepository{
		DB: db,
	}
}

// CreateProductComparison persists the comparison row together with its
// product associations.
func (r *ComparisonRepository) CreateProductComparison(ctx context.Context, comparison *domain.ProductComparison) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(comparison).Error; err != nil {
		return fmt.Errorf("failed to create product comparison: %w", err)
	}

	return nil
}

func (r *ComparisonRepository) CreateStoreComparison(ctx context.Context, comparison *domain.StoreComparison) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(comparison).Error; err != nil {
		return fmt.Errorf("failed to create store comparison: %w", err)
	}

	return nil
}

func (r *ComparisonRepository) FindProductComparisonsByUser(ctx context.Context, userID uint, limit int) ([]domain.ProductComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var comparisons []domain.ProductComparison
	err := r.DB.WithContext(ctx).
		Preload("Products").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&comparisons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product comparisons: %w", err)
	}

	return comparisons, nil
}

func (r *ComparisonRepository) FindStoreComparisonsByUser(ctx context.Context, userID uint, limit int) ([]domain.StoreComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var comparisons []domain.StoreComparison
	err := r.DB.WithContext(ctx).
		Preload("Stores").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&comparisons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find store comparisons: %w", err)
	}

	return comparisons, nil
}

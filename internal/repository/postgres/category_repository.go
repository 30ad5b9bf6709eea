package postgres

import (
	"context"
	"fmt"
	"smartMarket/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

// FindActiveRoots lists top-level active categories in display order.
func (r *CategoryRepository) FindActiveRoots(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.Category
	err := r.DB.WithContext(ctx).
		Where("is_active = ? AND parent_id IS NULL", true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

type BrandRepository struct {
	DB *gorm.DB
}

func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{
		DB: db,
	}
}

func (r *BrandRepository) FindActive(ctx context.Context) ([]domain.Brand, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var brands []domain.Brand
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&brands).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find brands: %w", err)
	}

	return brands, nil
}

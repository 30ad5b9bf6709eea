package postgres

import (
	"context"
	"fmt"
	"smartMarket/domain"
	"time"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{
		DB: db,
	}
}

func (r *AnalyticsRepository) FindStoreAnalytics(ctx context.Context, storeID uint64, since time.Time) ([]domain.StoreAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.StoreAnalytics
	err := r.DB.WithContext(ctx).
		Where("store_id = ? AND date >= ?", storeID, since).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find store analytics: %w", err)
	}

	return rows, nil
}

func (r *AnalyticsRepository) FindProductPerformance(ctx context.Context, storeID uint64, since time.Time) ([]domain.ProductPerformance, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ProductPerformance
	err := r.DB.WithContext(ctx).
		Joins("JOIN products ON products.id = product_performance.product_id").
		Where("products.store_id = ? AND product_performance.date >= ?", storeID, since).
		Order("product_performance.date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product performance: %w", err)
	}

	return rows, nil
}

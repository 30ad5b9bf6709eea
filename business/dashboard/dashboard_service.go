package dashboard

import (
	"context"
	"fmt"
	"smartMarket/domain"
	"smartMarket/pkg/logger"
	"time"
)

type AnalyticsRepository interface {
	FindStoreAnalytics(ctx context.Context, storeID uint64, since time.Time) ([]domain.StoreAnalytics, error)
	FindProductPerformance(ctx context.Context, storeID uint64, since time.Time) ([]domain.ProductPerformance, error)
}

type StoreRepository interface {
	FindByOwner(ctx context.Context, ownerID uint) (domain.Store, error)
}

type dashboardService struct {
	analyticsRepo AnalyticsRepository
	storeRepo     StoreRepository
	timeSource    func() time.Time
}

func NewDashboardService(analyticsRepo AnalyticsRepository, storeRepo StoreRepository) *dashboardService {
	return &dashboardService{
		analyticsRepo: analyticsRepo,
		storeRepo:     storeRepo,
		timeSource:    time.Now,
	}
}

// StoreAnalytics returns the owner's daily analytics rows for the last
// `days` days.
func (s *dashboardService) StoreAnalytics(ctx context.Context, ownerID uint, days int) ([]domain.StoreAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if days <= 0 {
		days = 30
	}

	store, err := s.storeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	since := s.timeSource().AddDate(0, 0, -days)

	rows, err := s.analyticsRepo.FindStoreAnalytics(ctx, store.ID, since)
	if err != nil {
		logger.Error("Failed to fetch store analytics", "store_id", store.ID, "error", err)
		return nil, err
	}

	return rows, nil
}

func (s *dashboardService) ProductPerformance(ctx context.Context, ownerID uint, days int) ([]domain.ProductPerformance, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if days <= 0 {
		days = 30
	}

	store, err := s.storeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	since := s.timeSource().AddDate(0, 0, -days)

	rows, err := s.analyticsRepo.FindProductPerformance(ctx, store.ID, since)
	if err != nil {
		logger.Error("Failed to fetch product performance", "store_id", store.ID, "error", err)
		return nil, err
	}

	return rows, nil
}

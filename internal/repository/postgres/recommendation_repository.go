package postgres

import (
	"context"
	"errors"
	"fmt"
	"smartMarket/domain"

	"gorm.io/gorm"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{
		DB: db,
	}
}

func (r *RecommendationRepository) CreateSession(ctx context.Context, session *domain.RecommendationSession) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create recommendation session: %w", err)
	}

	return nil
}

func (r *RecommendationRepository) CreateResults(ctx context.Context, results []domain.RecommendationResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Create(&results).Error; err != nil {
		return fmt.Errorf("failed to create recommendation results: %w", err)
	}

	return nil
}

func (r *RecommendationRepository) FindResult(ctx context.Context, sessionID uint, productID uint64) (domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}

	var result domain.RecommendationResult
	err := r.DB.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecommendationResult{}, errors.New("recommendation not found")
		}
		return domain.RecommendationResult{}, fmt.Errorf("failed to find recommendation result: %w", err)
	}

	return result, nil
}

func (r *RecommendationRepository) UpdateResult(ctx context.Context, result *domain.RecommendationResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Model(result).
		Select("was_clicked", "was_added_to_cart", "was_purchased", "click_timestamp").
		Updates(result).Error
	if err != nil {
		return fmt.Errorf("failed to update recommendation result: %w", err)
	}

	return nil
}

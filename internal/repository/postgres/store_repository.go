package postgres

import (
	"context"
	"errors"
	"fmt"
	"smartMarket/domain"

	"gorm.io/gorm"
)

type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{
		DB: db,
	}
}

func (r *StoreRepository) FindActive(ctx context.Context) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var stores []domain.Store
	err := r.DB.WithContext(ctx).
		Where("is_active = ? AND is_verified = ?", true, true).
		Order("average_rating DESC, name ASC").
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) FindActiveBySlug(ctx context.Context, slug string) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, fmt.Errorf("context error: %w", err)
	}

	var store domain.Store
	err := r.DB.WithContext(ctx).
		Where("slug = ? AND is_active = ? AND is_verified = ?", slug, true, true).
		First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Store{}, errors.New("store not found")
		}
		return domain.Store{}, fmt.Errorf("failed to find store: %w", err)
	}

	return store, nil
}

func (r *StoreRepository) FindActiveByIDs(ctx context.Context, ids []uint64) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var stores []domain.Store
	err := r.DB.WithContext(ctx).Where("id IN ? AND is_active = ?", ids, true).Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) FindByOwner(ctx context.Context, ownerID uint) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, fmt.Errorf("context error: %w", err)
	}

	var store domain.Store
	err := r.DB.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Store{}, errors.New("store not found")
		}
		return domain.Store{}, fmt.Errorf("failed to find store: %w", err)
	}

	return store, nil
}

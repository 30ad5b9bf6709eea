package postgres

import (
	"context"
	"errors"
	"fmt"
	"smartMarket/domain"
	"time"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{
		DB: db,
	}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.GeneratedReport) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

func (r *ReportRepository) Update(ctx context.Context, report *domain.GeneratedReport) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Save(report).Error; err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	return nil
}

func (r *ReportRepository) FindByIDForUser(ctx context.Context, id uint64, userID uint) (domain.GeneratedReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.GeneratedReport{}, fmt.Errorf("context error: %w", err)
	}

	var report domain.GeneratedReport
	err := r.DB.WithContext(ctx).
		Where("id = ? AND generated_by = ?", id, userID).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GeneratedReport{}, errors.New("report not found")
		}
		return domain.GeneratedReport{}, fmt.Errorf("failed to find report: %w", err)
	}

	return report, nil
}

func (r *ReportRepository) FindByUser(ctx context.Context, userID uint) ([]domain.GeneratedReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reports []domain.GeneratedReport
	err := r.DB.WithContext(ctx).
		Where("generated_by = ?", userID).
		Order("generated_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reports: %w", err)
	}

	return reports, nil
}

func (r *ReportRepository) TouchLastAccessed(ctx context.Context, id uint64, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Model(&domain.GeneratedReport{}).
		Where("id = ?", id).
		UpdateColumn("last_accessed", at).Error
	if err != nil {
		return fmt.Errorf("failed to touch report: %w", err)
	}

	return nil
}

// RecordDownload bumps the download counter and access timestamp in one
// statement.
func (r *ReportRepository) RecordDownload(ctx context.Context, id uint64, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Model(&domain.GeneratedReport{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"download_count": gorm.Expr("download_count + 1"),
			"last_accessed":  at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}

	return nil
}

func (r *ReportRepository) CreateSchedule(ctx context.Context, schedule *domain.ReportSchedule) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(schedule).Error; err != nil {
		return fmt.Errorf("failed to create report schedule: %w", err)
	}

	return nil
}

func (r *ReportRepository) FindSchedulesByUser(ctx context.Context, userID uint) ([]domain.ReportSchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var schedules []domain.ReportSchedule
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find report schedules: %w", err)
	}

	return schedules, nil
}

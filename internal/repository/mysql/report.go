package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/repository/mysql/model"
)

type reportRepository struct {
	DB *gorm.DB
}

var _ domain.ReportRepository = (*reportRepository)(nil)

func NewReportRepository(db *gorm.DB) *reportRepository {
	return &reportRepository{
		DB: db,
	}
}

// Store inserts unconditionally. Reports are an audit trail, not a
// toggle: the same user filing twice produces two rows.
func (r *reportRepository) Store(ctx context.Context, report *domain.Report) error {
	reportModel := model.NewReportFromDomain(report)
	if err := r.DB.WithContext(ctx).Create(reportModel).Error; err != nil {
		return err
	}
	report.ID = reportModel.ID
	report.CreatedAt = reportModel.CreatedAt
	return nil
}

func (r *reportRepository) CountByTarget(ctx context.Context, targetType string, targetID int64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.Report{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

// FetchMostReported derives the ranking by counting rows. Moderation
// reads this rarely, so no counter column exists for reports.
func (r *reportRepository) FetchMostReported(ctx context.Context, targetType string, limit int64) ([]domain.ReportSummary, error) {
	var res []domain.ReportSummary
	err := r.DB.WithContext(ctx).
		Model(&model.Report{}).
		Select("target_id, COUNT(*) AS reports").
		Where("target_type = ?", targetType).
		Group("target_id").
		Order("reports DESC").
		Limit(int(limit)).
		Find(&res).Error
	return res, err
}

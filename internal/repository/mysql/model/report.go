package model

import (
	"time"

	"github.com/triplog/triplog-backend/domain"
)

type Report struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	TargetType string    `gorm:"column:target_type;type:varchar(10);not null;index:idx_target"`
	TargetID   int64     `gorm:"column:target_id;not null;index:idx_target"`
	UserID     int64     `gorm:"column:user_id;not null"`
	Reason     string    `gorm:"type:varchar(200);not null"`
	CreatedAt  time.Time `gorm:"type:datetime"`
}

func (Report) TableName() string {
	return "report"
}

func NewReportFromDomain(r *domain.Report) *Report {
	return &Report{
		ID:         r.ID,
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		UserID:     r.UserID,
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *Report) ToDomain() domain.Report {
	return domain.Report{
		ID:         m.ID,
		TargetType: m.TargetType,
		TargetID:   m.TargetID,
		UserID:     m.UserID,
		Reason:     m.Reason,
		CreatedAt:  m.CreatedAt,
	}
}

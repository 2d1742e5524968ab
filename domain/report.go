package domain

import (
	"context"
	"time"
)

// Report target types.
const (
	ReportTargetPost    = "post"
	ReportTargetComment = "comment"
)

// Report is a permanent audit record of a user flagging a piece of
// content. Reports are deliberately not deduplicated per user: filing
// again expresses escalating concern, so every submission inserts a row.
type Report struct {
	ID         int64
	TargetType string // post or comment
	TargetID   int64
	UserID     int64 // Reporting user
	Reason     string
	CreatedAt  time.Time
}

// ReportSummary ranks a target by its report volume for moderation views.
type ReportSummary struct {
	TargetID int64
	Reports  int64
}

// ReportRepository defines the data access contract for reports. No
// counter column exists for reports; volumes are derived by counting
// rows when moderation asks for them.
type ReportRepository interface {
	// Store inserts the report row unconditionally.
	Store(ctx context.Context, r *Report) error

	// CountByTarget counts the reports filed against one target.
	CountByTarget(ctx context.Context, targetType string, targetID int64) (int64, error)

	// FetchMostReported lists targets of one type ordered by report
	// volume, highest first.
	FetchMostReported(ctx context.Context, targetType string, limit int64) ([]ReportSummary, error)
}

// ReportUsecase defines the business logic contract for reporting.
type ReportUsecase interface {
	// File validates the reason and target, then records the report.
	File(ctx context.Context, r *Report, caller Identity) error

	// MostReported is the moderation ranking, restricted to admins.
	MostReported(ctx context.Context, targetType string, limit int64, caller Identity) ([]ReportSummary, error)

	// TargetCount is the moderation drill-down on one target, restricted
	// to admins.
	TargetCount(ctx context.Context, targetType string, targetID int64, caller Identity) (int64, error)
}

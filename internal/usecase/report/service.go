package report

import (
	"context"
	"strings"

	"github.com/triplog/triplog-backend/domain"
)

const (
	maxReasonLen     = 500
	defaultRankLimit = 10
	maxRankLimit     = 100
)

type service struct {
	reportRepo  domain.ReportRepository
	postRepo    domain.PostDBRepository
	commentRepo domain.CommentRepository
}

var _ domain.ReportUsecase = (*service)(nil)

func NewService(
	reportRepo domain.ReportRepository,
	postRepo domain.PostDBRepository,
	commentRepo domain.CommentRepository,
) *service {
	return &service{
		reportRepo:  reportRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *service) File(ctx context.Context, r *domain.Report, caller domain.Identity) error {
	if caller.Anonymous() {
		return domain.ErrForbidden
	}

	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" || len(r.Reason) > maxReasonLen {
		return domain.ErrBadParamInput
	}

	// The target must exist at filing time. Reports against deleted
	// content are removed by the cascade, so a dangling target here is
	// caller error.
	switch r.TargetType {
	case domain.ReportTargetPost:
		if _, err := s.postRepo.GetByID(ctx, r.TargetID); err != nil {
			return err
		}
	case domain.ReportTargetComment:
		if _, err := s.commentRepo.GetByID(ctx, r.TargetID); err != nil {
			return err
		}
	default:
		return domain.ErrBadParamInput
	}

	r.UserID = caller.UserID
	return s.reportRepo.Store(ctx, r)
}

func (s *service) MostReported(ctx context.Context, targetType string, limit int64, caller domain.Identity) ([]domain.ReportSummary, error) {
	if !caller.Admin() {
		return nil, domain.ErrForbidden
	}
	if targetType != domain.ReportTargetPost && targetType != domain.ReportTargetComment {
		return nil, domain.ErrBadParamInput
	}
	if limit <= 0 {
		limit = defaultRankLimit
	}
	if limit > maxRankLimit {
		limit = maxRankLimit
	}
	return s.reportRepo.FetchMostReported(ctx, targetType, limit)
}

func (s *service) TargetCount(ctx context.Context, targetType string, targetID int64, caller domain.Identity) (int64, error) {
	if !caller.Admin() {
		return 0, domain.ErrForbidden
	}
	if targetType != domain.ReportTargetPost && targetType != domain.ReportTargetComment {
		return 0, domain.ErrBadParamInput
	}
	if targetID < 1 {
		return 0, domain.ErrBadParamInput
	}
	return s.reportRepo.CountByTarget(ctx, targetType, targetID)
}

package response

import "github.com/triplog/triplog-backend/domain"

type ReportSummary struct {
	TargetID int64 `json:"targetId"`
	Reports  int64 `json:"reports"`
}

func NewReportSummaryFromDomain(s *domain.ReportSummary) ReportSummary {
	return ReportSummary{
		TargetID: s.TargetID,
		Reports:  s.Reports,
	}
}

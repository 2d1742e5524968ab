package request

import "github.com/triplog/triplog-backend/domain"

type Report struct {
	TargetType string `json:"target_type" binding:"required,oneof=post comment"`
	TargetID   int64  `json:"target_id" binding:"required"`
	Reason     string `json:"reason" binding:"required,max=500"`
}

// ToDomain: Request -> Domain
func (r *Report) ToDomain() domain.Report {
	return domain.Report{
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		Reason:     r.Reason,
	}
}

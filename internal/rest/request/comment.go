package request

import "github.com/triplog/triplog-backend/domain"

type Comment struct {
	Body     string `json:"body" binding:"required,max=2000"`
	ParentID int64  `json:"parent_id"` // 0 for a top-level comment
}

// ToDomain: Request -> Domain
func (r *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		Content:  r.Body,
		ParentID: r.ParentID,
	}
}

type CommentUpdate struct {
	Body string `json:"body" binding:"required,max=2000"`
}

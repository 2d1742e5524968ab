package model

import (
	"time"

	"github.com/triplog/triplog-backend/domain"
)

type Comment struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	PostID       int64     `gorm:"column:post_id;not null;index"`
	UserID       int64     `gorm:"column:user_id;not null"`
	ParentID     int64     `gorm:"column:parent_id;default:0;index"`
	Content      string    `gorm:"type:text;not null"`
	LikeCount    int64     `gorm:"column:like_count;default:0"`
	RepliesCount int64     `gorm:"column:replies_count;default:0"`
	UpdatedAt    time.Time `gorm:"type:datetime"`
	CreatedAt    time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:           c.ID,
		PostID:       c.PostID,
		UserID:       c.UserID,
		ParentID:     c.ParentID,
		Content:      c.Content,
		LikeCount:    c.LikeCount,
		RepliesCount: c.RepliesCount,
		UpdatedAt:    c.UpdatedAt,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:           m.ID,
		PostID:       m.PostID,
		UserID:       m.UserID,
		ParentID:     m.ParentID,
		Content:      m.Content,
		LikeCount:    m.LikeCount,
		RepliesCount: m.RepliesCount,
		UpdatedAt:    m.UpdatedAt,
		CreatedAt:    m.CreatedAt,
	}
}

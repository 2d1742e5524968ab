package model

import (
	"time"

	"github.com/triplog/triplog-backend/domain"
)

type Post struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	UserID       int64     `gorm:"column:user_id;not null"`
	Title        string    `gorm:"type:varchar(100);not null"`
	Content      string    `gorm:"type:longtext;not null"`
	LikeCount    int64     `gorm:"column:like_count;default:0"`
	CommentCount int64     `gorm:"column:comment_count;default:0"`
	ViewCount    int64     `gorm:"column:view_count;default:0"`
	UpdatedAt    time.Time `gorm:"type:datetime"`
	CreatedAt    time.Time `gorm:"type:datetime"`
}

func (Post) TableName() string {
	return "post"
}

// PostHashtag holds one hashtag attached to a post.
type PostHashtag struct {
	PostID int64  `gorm:"column:post_id;not null;uniqueIndex:uk_post_tag"`
	Tag    string `gorm:"type:varchar(45);not null;uniqueIndex:uk_post_tag"`
}

func (PostHashtag) TableName() string {
	return "post_hashtag"
}

func (m *Post) ToDomain() domain.Post {
	return domain.Post{
		ID:           m.ID,
		Title:        m.Title,
		Content:      m.Content,
		User:         domain.User{ID: m.UserID},
		LikeCount:    m.LikeCount,
		CommentCount: m.CommentCount,
		Views:        m.ViewCount,
		UpdatedAt:    m.UpdatedAt,
		CreatedAt:    m.CreatedAt,
	}
}

func NewPostFromDomain(p *domain.Post) *Post {
	return &Post{
		ID:           p.ID,
		UserID:       p.User.ID,
		Title:        p.Title,
		Content:      p.Content,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		ViewCount:    p.Views,
		UpdatedAt:    p.UpdatedAt,
		CreatedAt:    p.CreatedAt,
	}
}

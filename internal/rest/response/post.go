package response

import "github.com/triplog/triplog-backend/domain"

type Post struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Author        *User    `json:"author,omitempty"`
	Hashtags      []string `json:"hashtags"`
	LikeCount     int64    `json:"likeCount"`
	CommentCount  int64    `json:"commentCount"`
	Views         int64    `json:"views"`
	LikedByCaller bool     `json:"likedByCaller"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// NewPostFromDomain: Domain -> Response
func NewPostFromDomain(p *domain.Post) Post {
	tags := p.Hashtags
	if tags == nil {
		tags = []string{}
	}
	return Post{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Author:        NewUserFromDomain(&p.User),
		Hashtags:      tags,
		LikeCount:     p.LikeCount,
		CommentCount:  p.CommentCount,
		Views:         p.Views,
		LikedByCaller: p.LikedByCaller,
		CreatedAt:     p.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:     p.UpdatedAt.Format(DateTimeFormat),
	}
}

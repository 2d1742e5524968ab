package request

import "github.com/triplog/triplog-backend/domain"

type Post struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Content  string   `json:"content" binding:"required"`
	Hashtags []string `json:"hashtags" binding:"max=10,dive,max=50"`
}

// ToDomain: Request -> Domain
func (r *Post) ToDomain() domain.Post {
	return domain.Post{
		Title:    r.Title,
		Content:  r.Content,
		Hashtags: r.Hashtags,
	}
}

package response

import "github.com/triplog/triplog-backend/domain"

type Comment struct {
	CommentID     int64  `json:"commentId"`
	PostID        int64  `json:"postId"`
	ParentID      int64  `json:"parentId,omitempty"`
	Author        *User  `json:"author,omitempty"`
	Body          string `json:"body"`
	LikeCount     int64  `json:"likeCount"`
	RepliesCount  int64  `json:"repliesCount"`
	LikedByCaller bool   `json:"likedByCaller"`
	CreatedAt     string `json:"createdAt"`
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) Comment {
	return Comment{
		CommentID:     c.ID,
		PostID:        c.PostID,
		ParentID:      c.ParentID,
		Author:        NewUserFromDomain(c.User),
		Body:          c.Content,
		LikeCount:     c.LikeCount,
		RepliesCount:  c.RepliesCount,
		LikedByCaller: c.LikedByCaller,
		CreatedAt:     c.CreatedAt.Format(DateTimeFormat),
	}
}

package domain

import (
	"context"
	"time"
)

// Comment is a reaction to a post. ParentID == 0 means a top-level
// comment; otherwise the comment is a reply and may itself never be
// replied to (the tree is at most two levels deep).
type Comment struct {
	ID            int64     `json:"id"`
	PostID        int64     `json:"post_id"`
	UserID        int64     `json:"user_id"`
	ParentID      int64     `json:"parent_id"`
	Content       string    `json:"content"`
	LikeCount     int64     `json:"like_count"`
	RepliesCount  int64     `json:"replies_count"`
	LikedByCaller bool      `json:"liked_by_caller"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// User carries the comment author's details on read paths.
	User *User `json:"user,omitempty"`
}

// TopLevel reports whether the comment sits directly under a post.
func (c *Comment) TopLevel() bool {
	return c.ParentID == 0
}

// CommentRepository defines the data access contract for the comment tree.
// Store and Delete run the counter maintenance of the parent chain inside
// the same transaction as the row change.
type CommentRepository interface {
	// Store inserts the comment. For a reply the referenced parent is
	// validated inside the transaction: a missing parent yields
	// ErrNotFound and a parent that is itself a reply yields
	// ErrConflict. The post's comment_count, and for replies the
	// parent's replies_count, are incremented atomically.
	Store(ctx context.Context, c *Comment) error

	// GetByID retrieves a comment. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// FetchTopLevel returns one page of a post's top-level comments,
	// newest first, with the total count of top-level comments.
	FetchTopLevel(ctx context.Context, postID, page, size int64) ([]Comment, int64, error)

	// FetchReplies returns one page of replies to the given parent,
	// oldest first, with the total count of replies.
	FetchReplies(ctx context.Context, parentID, page, size int64) ([]Comment, int64, error)

	// UpdateContent replaces the comment body.
	UpdateContent(ctx context.Context, id int64, content string) error

	// Delete removes the comment together with its replies and all
	// like and report rows that referenced the removed comments, and
	// settles the ancestor counters, in one transaction. It reports
	// how many descendant rows were removed (0 for a reply or a
	// childless top-level comment).
	Delete(ctx context.Context, c *Comment) (removedReplies int64, err error)
}

// CommentUsecase defines the business logic contract for the comment tree.
type CommentUsecase interface {
	ListTopLevel(ctx context.Context, postID, page, size int64, caller Identity) ([]Comment, int64, error)
	ListReplies(ctx context.Context, parentID, page, size int64, caller Identity) ([]Comment, int64, error)
	Create(ctx context.Context, c *Comment) error

	// Update is permitted for the author or an admin only.
	Update(ctx context.Context, id int64, content string, caller Identity) error

	// Delete is permitted for the author or an admin only. It reports
	// how many replies were removed along with the comment.
	Delete(ctx context.Context, id int64, caller Identity) (removedReplies int64, err error)

	Like(ctx context.Context, commentID int64, caller Identity) error
	Unlike(ctx context.Context, commentID int64, caller Identity) error
}

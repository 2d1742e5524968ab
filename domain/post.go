package domain

import (
	"context"
	"time"
)

// Post is a community article written by a user.
type Post struct {
	ID            int64
	Title         string
	Content       string
	User          User     // Author information
	Hashtags      []string // Attached hashtag set
	LikeCount     int64
	CommentCount  int64
	Views         int64
	LikedByCaller bool // Whether the requesting user currently likes this post
	UpdatedAt     time.Time
	CreatedAt     time.Time
}

// PostDBRepository defines the database-only contract for post persistence.
// Counter columns are only ever touched through the atomic Add* methods or
// inside the repository's own transactions, never by read-then-write.
type PostDBRepository interface {
	// Fetch retrieves one page of posts ordered by creation time,
	// newest first, together with the total number of posts.
	Fetch(ctx context.Context, page, size int64) ([]Post, int64, error)

	// GetByID retrieves a single post by its ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id int64) (Post, error)

	// Store creates a new post with its hashtag rows.
	Store(ctx context.Context, p *Post) error

	// Update modifies title, content and hashtags of an existing post.
	// Returns ErrNotFound if the post doesn't exist.
	Update(ctx context.Context, p *Post) error

	// Delete removes the post and everything hanging off it (comments,
	// replies, their likes, the post's likes, reports and hashtags) in
	// one transaction. It reports how many comment rows were removed.
	Delete(ctx context.Context, id int64) (removedComments int64, err error)

	// AddViews increments the view count of a post by deltaViews.
	AddViews(ctx context.Context, id int64, deltaViews int64) error
}

// PostRepository is the read/write surface the usecase layer sees. It has
// the same shape as PostDBRepository; the implementation coordinates the
// database with the cache.
type PostRepository interface {
	PostDBRepository
}

// PostCache holds hot post entities and buffers view-count deltas so the
// read path never writes to the database.
type PostCache interface {
	GetPost(ctx context.Context, id int64) (Post, error)
	SetPost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id int64) error

	// IncrViews buffers one view for the post and returns the buffered
	// delta not yet flushed to the database.
	IncrViews(ctx context.Context, id int64) (int64, error)

	// FetchAndResetViews drains the whole view buffer, keyed by post ID.
	FetchAndResetViews(ctx context.Context) (map[int64]int64, error)
}

// PostUsecase defines the business logic contract for post operations.
type PostUsecase interface {
	Fetch(ctx context.Context, caller Identity, page, size int64) ([]Post, int64, error)
	GetByID(ctx context.Context, id int64, caller Identity) (Post, error)
	Store(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post, caller Identity) error

	// Delete cascades and reports how many comment rows went with the post.
	Delete(ctx context.Context, id int64, caller Identity) (removedComments int64, err error)

	// Like records that the caller likes the post. Returns ErrConflict
	// if the like already exists.
	Like(ctx context.Context, postID int64, caller Identity) error

	// Unlike removes the caller's like. Returns ErrNotFound if the post
	// is not currently liked.
	Unlike(ctx context.Context, postID int64, caller Identity) error
}

package domain

import (
	"context"
)

// LikeRepository manages the three like membership sets. At most one
// membership row exists per (target, user) pair; the composite key is
// the idempotency guarantee against concurrent duplicates. Every Like*
// call inserts the membership row and increments the target's like_count
// in one transaction; every Unlike* deletes and decrements likewise.
//
// Like* returns ErrConflict when the row already exists and ErrNotFound
// when the target is absent. Unlike* returns ErrNotFound when the row
// does not exist ("not currently liked").
type LikeRepository interface {
	LikePost(ctx context.Context, userID, postID int64) error
	UnlikePost(ctx context.Context, userID, postID int64) error

	LikeComment(ctx context.Context, userID, commentID int64) error
	UnlikeComment(ctx context.Context, userID, commentID int64) error

	LikeTrip(ctx context.Context, userID, tripID int64) error
	UnlikeTrip(ctx context.Context, userID, tripID int64) error

	// LikedPostSet reports which of the given posts the user currently
	// likes, as one batched membership query.
	LikedPostSet(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)

	// LikedCommentSet is LikedPostSet for comments.
	LikedCommentSet(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error)

	// LikedTripSet is LikedPostSet for trips.
	LikedTripSet(ctx context.Context, userID int64, tripIDs []int64) (map[int64]bool, error)
}

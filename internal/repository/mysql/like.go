package mysql

import (
	"context"
	"errors"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/repository/mysql/model"
)

const duplicateEntryErrNo = 1062

type likeRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRepository = (*likeRepository)(nil)

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{
		DB: db,
	}
}

// isDuplicateEntry reports whether the insert hit the composite unique
// key. That key is the backstop for two concurrent likes from the same
// user: the loser of the race fails here instead of double counting.
func isDuplicateEntry(err error) bool {
	var mysqlErr *driver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntryErrNo
}

func (r *likeRepository) LikePost(ctx context.Context, userID, postID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&model.PostLike{}).
			Where("post_id = ? AND user_id = ?", postID, userID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrConflict
		}

		if err := tx.Create(&model.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
			if isDuplicateEntry(err) {
				return domain.ErrConflict
			}
			return err
		}

		result := tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *likeRepository) UnlikePost(ctx context.Context, userID, postID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		// The decrement pairs with a delete that just succeeded, so the
		// counter never goes below zero.
		result = tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - ?", 1))
		if result.Error != nil {
			return result.Error
		}
		return nil
	})
}

func (r *likeRepository) LikeComment(ctx context.Context, userID, commentID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&model.CommentLike{}).
			Where("comment_id = ? AND user_id = ?", commentID, userID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrConflict
		}

		if err := tx.Create(&model.CommentLike{CommentID: commentID, UserID: userID}).Error; err != nil {
			if isDuplicateEntry(err) {
				return domain.ErrConflict
			}
			return err
		}

		result := tx.Model(&model.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *likeRepository) UnlikeComment(ctx context.Context, userID, commentID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&model.CommentLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		result = tx.Model(&model.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count - ?", 1))
		if result.Error != nil {
			return result.Error
		}
		return nil
	})
}

func (r *likeRepository) LikeTrip(ctx context.Context, userID, tripID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&model.TripLike{}).
			Where("trip_id = ? AND user_id = ?", tripID, userID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrConflict
		}

		if err := tx.Create(&model.TripLike{TripID: tripID, UserID: userID}).Error; err != nil {
			if isDuplicateEntry(err) {
				return domain.ErrConflict
			}
			return err
		}

		result := tx.Model(&model.Trip{}).
			Where("id = ?", tripID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *likeRepository) UnlikeTrip(ctx context.Context, userID, tripID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("trip_id = ? AND user_id = ?", tripID, userID).Delete(&model.TripLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		result = tx.Model(&model.Trip{}).
			Where("id = ?", tripID).
			UpdateColumn("like_count", gorm.Expr("like_count - ?", 1))
		if result.Error != nil {
			return result.Error
		}
		return nil
	})
}

func (r *likeRepository) LikedPostSet(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	return r.likedSet(ctx, "post_like", "post_id", userID, postIDs)
}

func (r *likeRepository) LikedCommentSet(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
	return r.likedSet(ctx, "comment_like", "comment_id", userID, commentIDs)
}

func (r *likeRepository) LikedTripSet(ctx context.Context, userID int64, tripIDs []int64) (map[int64]bool, error) {
	return r.likedSet(ctx, "trip_like", "trip_id", userID, tripIDs)
}

// likedSet answers "which of these does the user like" as one batched
// membership query instead of one lookup per row.
func (r *likeRepository) likedSet(ctx context.Context, table, column string, userID int64, ids []int64) (map[int64]bool, error) {
	res := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	var likedIDs []int64
	err := r.DB.WithContext(ctx).
		Table(table).
		Select(column).
		Where("user_id = ? AND "+column+" IN ?", userID, ids).
		Find(&likedIDs).Error
	if err != nil {
		return nil, err
	}

	for _, id := range likedIDs {
		res[id] = true
	}
	return res, nil
}

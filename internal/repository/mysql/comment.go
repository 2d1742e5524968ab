package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/repository"
	"github.com/triplog/triplog-backend/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

// Store inserts the comment and settles the ancestor counters in one
// transaction. The parent lookup, the insert and the increments either
// all land or none do.
func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if comment.ParentID != 0 {
			var parent model.Comment
			if err := tx.First(&parent, "id = ?", comment.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrNotFound
				}
				return err
			}
			// A reply can never acquire replies of its own.
			if parent.ParentID != 0 {
				return domain.ErrConflict
			}
			comment.PostID = parent.PostID
		}

		commentModel := model.NewCommentFromDomain(comment)
		if err := tx.Create(commentModel).Error; err != nil {
			return err
		}

		if comment.ParentID != 0 {
			result := tx.Model(&model.Comment{}).
				Where("id = ?", comment.ParentID).
				UpdateColumn("replies_count", gorm.Expr("replies_count + ?", 1))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domain.ErrNotFound
			}
		}

		// The increment doubles as the post existence check: zero rows
		// touched means the post is gone and the whole insert rolls back.
		result := tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		comment.ID = commentModel.ID
		comment.CreatedAt = commentModel.CreatedAt
		comment.UpdatedAt = commentModel.UpdatedAt
		return nil
	})
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) FetchTopLevel(ctx context.Context, postID, page, size int64) ([]domain.Comment, int64, error) {
	return c.fetchPage(ctx, "post_id = ? AND parent_id = 0", postID, page, size, "created_at DESC, id DESC")
}

func (c *commentRepository) FetchReplies(ctx context.Context, parentID, page, size int64) ([]domain.Comment, int64, error) {
	return c.fetchPage(ctx, "parent_id = ?", parentID, page, size, "created_at ASC, id ASC")
}

func (c *commentRepository) fetchPage(ctx context.Context, cond string, arg, page, size int64, order string) ([]domain.Comment, int64, error) {
	repository.PageVerify(&page, &size)

	var total int64
	err := c.DB.WithContext(ctx).Model(&model.Comment{}).Where(cond, arg).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err = c.DB.WithContext(ctx).
		Where(cond, arg).
		Order(order).
		Offset(repository.Offset(page, size)).
		Limit(int(size)).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, total, nil
}

func (c *commentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	result := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the comment's subtree. For a top-level comment the
// replies, every like row on the removed comments and their reports go
// in the same transaction, and the post's comment_count drops by
// 1 + removedReplies. For a reply the parent's replies_count drops by 1.
func (c *commentRepository) Delete(ctx context.Context, comment *domain.Comment) (removedReplies int64, err error) {
	err = c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removedIDs := []int64{comment.ID}

		if comment.TopLevel() {
			var replyIDs []int64
			if err := tx.Model(&model.Comment{}).
				Where("parent_id = ?", comment.ID).
				Pluck("id", &replyIDs).Error; err != nil {
				return err
			}
			removedIDs = append(removedIDs, replyIDs...)

			if len(replyIDs) > 0 {
				result := tx.Where("parent_id = ?", comment.ID).Delete(&model.Comment{})
				if result.Error != nil {
					return result.Error
				}
				removedReplies = result.RowsAffected
			}
		}

		if err := tx.Where("comment_id IN ?", removedIDs).Delete(&model.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id IN ?", domain.ReportTargetComment, removedIDs).
			Delete(&model.Report{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", comment.ID).Delete(&model.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if !comment.TopLevel() {
			result = tx.Model(&model.Comment{}).
				Where("id = ?", comment.ParentID).
				UpdateColumn("replies_count", gorm.Expr("replies_count - ?", 1))
			if result.Error != nil {
				return result.Error
			}
		}

		result = tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", removedReplies+1))
		if result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removedReplies, nil
}

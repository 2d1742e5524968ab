package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/repository"
	"github.com/triplog/triplog-backend/internal/repository/mysql/model"
)

type postRepository struct {
	DB *gorm.DB
}

// mysql层只负责数据库操作
var _ domain.PostDBRepository = (*postRepository)(nil)

// NewPostDBRepository 创建数据库操作层
func NewPostDBRepository(db *gorm.DB) *postRepository {
	return &postRepository{db}
}

func (m *postRepository) Fetch(ctx context.Context, page, size int64) ([]domain.Post, int64, error) {
	repository.PageVerify(&page, &size)

	var total int64
	if err := m.DB.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := m.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(repository.Offset(page, size)).
		Limit(int(size)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.Post, len(posts))
	ids := make([]int64, len(posts))
	for i := range posts {
		res[i] = posts[i].ToDomain()
		ids[i] = posts[i].ID
	}

	if err := m.fillHashtags(ctx, ids, res); err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

func (m *postRepository) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	var post model.Post
	err := m.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Post{}, domain.ErrNotFound
		}
		return domain.Post{}, err
	}

	res := post.ToDomain()
	var tags []string
	err = m.DB.WithContext(ctx).
		Model(&model.PostHashtag{}).
		Where("post_id = ?", id).
		Pluck("tag", &tags).Error
	if err != nil {
		return domain.Post{}, err
	}
	res.Hashtags = tags
	return res, nil
}

func (m *postRepository) Store(ctx context.Context, p *domain.Post) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postModel := model.NewPostFromDomain(p)
		if err := tx.Create(postModel).Error; err != nil {
			return err
		}

		if len(p.Hashtags) > 0 {
			tags := make([]model.PostHashtag, 0, len(p.Hashtags))
			for _, tag := range p.Hashtags {
				tags = append(tags, model.PostHashtag{PostID: postModel.ID, Tag: tag})
			}
			if err := tx.Create(&tags).Error; err != nil {
				return err
			}
		}

		p.ID = postModel.ID
		p.CreatedAt = postModel.CreatedAt
		p.UpdatedAt = postModel.UpdatedAt
		return nil
	})
}

func (m *postRepository) Update(ctx context.Context, p *domain.Post) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Post{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{
				"title":   p.Title,
				"content": p.Content,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		// Hashtags are replaced wholesale; the set is small.
		if err := tx.Where("post_id = ?", p.ID).Delete(&model.PostHashtag{}).Error; err != nil {
			return err
		}
		if len(p.Hashtags) > 0 {
			tags := make([]model.PostHashtag, 0, len(p.Hashtags))
			for _, tag := range p.Hashtags {
				tags = append(tags, model.PostHashtag{PostID: p.ID, Tag: tag})
			}
			if err := tx.Create(&tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete cascades the whole subtree of the post in one transaction:
// likes and reports of its comments, the comments themselves, then the
// post's own likes, reports and hashtags, and finally the post row.
func (m *postRepository) Delete(ctx context.Context, id int64) (removedComments int64, err error) {
	err = m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []int64
		if err := tx.Model(&model.Comment{}).
			Where("post_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&model.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("target_type = ? AND target_id IN ?", domain.ReportTargetComment, commentIDs).
				Delete(&model.Report{}).Error; err != nil {
				return err
			}
			result := tx.Where("post_id = ?", id).Delete(&model.Comment{})
			if result.Error != nil {
				return result.Error
			}
			removedComments = result.RowsAffected
		}

		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", domain.ReportTargetPost, id).
			Delete(&model.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostHashtag{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removedComments, nil
}

func (m *postRepository) AddViews(ctx context.Context, id int64, deltaViews int64) error {
	result := m.DB.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", deltaViews))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *postRepository) fillHashtags(ctx context.Context, ids []int64, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	var rows []model.PostHashtag
	err := m.DB.WithContext(ctx).
		Where("post_id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return err
	}

	tagMap := make(map[int64][]string)
	for _, row := range rows {
		tagMap[row.PostID] = append(tagMap[row.PostID], row.Tag)
	}
	for i := range posts {
		posts[i].Hashtags = tagMap[posts[i].ID]
	}
	return nil
}

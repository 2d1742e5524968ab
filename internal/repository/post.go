package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/triplog/triplog-backend/domain"
)

// postRepository 协调层，协调缓存和数据库
type postRepository struct {
	db           domain.PostDBRepository
	cache        domain.PostCache
	userRepo     domain.UserRepository
	rebuildGroup singleflight.Group
}

var _ domain.PostRepository = (*postRepository)(nil)

// NewPostRepository 创建协调层repository
func NewPostRepository(db domain.PostDBRepository, cache domain.PostCache, userRepo domain.UserRepository) *postRepository {
	return &postRepository{
		db:       db,
		cache:    cache,
		userRepo: userRepo,
	}
}

func (r *postRepository) Fetch(ctx context.Context, page, size int64) ([]domain.Post, int64, error) {
	posts, total, err := r.db.Fetch(ctx, page, size)
	if err != nil {
		return nil, 0, err
	}

	posts, err = r.fillUserDetails(ctx, posts)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID serves hot posts from cache; concurrent misses for the same
// post rebuild once through singleflight. Buffered views are layered on
// top so the returned count includes reads not yet flushed to mysql.
func (r *postRepository) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	post, err := r.cache.GetPost(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logrus.Warnf("post cache get error: %v", err)
		}

		result, err, _ := r.rebuildGroup.Do("post:"+strconv.FormatInt(id, 10), func() (any, error) {
			p, err := r.db.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}

			user, err := r.userRepo.GetByID(ctx, p.User.ID)
			if err != nil {
				return nil, err
			}
			p.User = user

			if err := r.cache.SetPost(context.Background(), &p); err != nil {
				logrus.Warnf("failed to set post cache: %v", err)
			}
			return p, nil
		})
		if err != nil {
			return domain.Post{}, err
		}
		post = result.(domain.Post)
	}

	deltaViews, err := r.cache.IncrViews(ctx, id)
	if err != nil {
		logrus.Errorf("failed to buffer view for post %d: %v", id, err)
		return post, nil
	}
	post.Views += deltaViews
	return post, nil
}

func (r *postRepository) Store(ctx context.Context, p *domain.Post) error {
	return r.db.Store(ctx, p)
}

func (r *postRepository) Update(ctx context.Context, p *domain.Post) error {
	if err := r.db.Update(ctx, p); err != nil {
		return err
	}

	r.invalidate(p.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) (int64, error) {
	removed, err := r.db.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	r.invalidate(id)
	return removed, nil
}

func (r *postRepository) AddViews(ctx context.Context, id int64, deltaViews int64) error {
	return r.db.AddViews(ctx, id, deltaViews)
}

// invalidate drops the cached entity so the next read rebuilds from the
// post-mutation database state.
func (r *postRepository) invalidate(id int64) {
	go func(id int64) {
		if err := r.cache.DeletePost(context.Background(), id); err != nil {
			logrus.Warnf("failed to invalidate post cache for %d: %v", id, err)
		}
	}(id)
}

// fillUserDetails 批量填充作者信息
func (r *postRepository) fillUserDetails(ctx context.Context, posts []domain.Post) ([]domain.Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	userIDs := make([]int64, 0, len(posts))
	existMap := make(map[int64]bool)
	for _, item := range posts {
		if !existMap[item.User.ID] {
			userIDs = append(userIDs, item.User.ID)
			existMap[item.User.ID] = true
		}
	}

	users := make([]domain.User, len(userIDs))
	for i, uid := range userIDs {
		g.Go(func() error {
			u, err := r.userRepo.GetByID(ctx, uid)
			if err != nil {
				return err
			}
			users[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userMap := make(map[int64]domain.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	for i := range posts {
		if u, ok := userMap[posts[i].User.ID]; ok {
			posts[i].User = u
		}
	}

	return posts, nil
}

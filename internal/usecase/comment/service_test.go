package comment

import (
	"context"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"

	"github.com/triplog/triplog-backend/domain"
)

type fakeCommentRepo struct {
	domain.CommentRepository
	storeFn         func(ctx context.Context, c *domain.Comment) error
	getByIDFn       func(ctx context.Context, id int64) (*domain.Comment, error)
	fetchTopLevelFn func(ctx context.Context, postID, page, size int64) ([]domain.Comment, int64, error)
	updateContentFn func(ctx context.Context, id int64, content string) error
	deleteFn        func(ctx context.Context, c *domain.Comment) (int64, error)
}

func (f *fakeCommentRepo) Store(ctx context.Context, c *domain.Comment) error {
	return f.storeFn(ctx, c)
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeCommentRepo) FetchTopLevel(ctx context.Context, postID, page, size int64) ([]domain.Comment, int64, error) {
	return f.fetchTopLevelFn(ctx, postID, page, size)
}

func (f *fakeCommentRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	return f.updateContentFn(ctx, id, content)
}

func (f *fakeCommentRepo) Delete(ctx context.Context, c *domain.Comment) (int64, error) {
	return f.deleteFn(ctx, c)
}

type fakePostRepo struct {
	domain.PostDBRepository
	getByIDFn func(ctx context.Context, id int64) (domain.Post, error)
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	return f.getByIDFn(ctx, id)
}

type fakeLikeRepo struct {
	domain.LikeRepository
	likeCommentFn     func(ctx context.Context, userID, commentID int64) error
	likedCommentSetFn func(ctx context.Context, userID int64, ids []int64) (map[int64]bool, error)
}

func (f *fakeLikeRepo) LikeComment(ctx context.Context, userID, commentID int64) error {
	return f.likeCommentFn(ctx, userID, commentID)
}

func (f *fakeLikeRepo) LikedCommentSet(ctx context.Context, userID int64, ids []int64) (map[int64]bool, error) {
	return f.likedCommentSetFn(ctx, userID, ids)
}

type fakeUserRepo struct {
	domain.UserRepository
	getByIDsFn func(ctx context.Context, ids []int64) ([]domain.User, error)
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	return f.getByIDsFn(ctx, ids)
}

type fakeCache struct {
	domain.PostCache
	deleted []int64
}

func (f *fakeCache) DeletePost(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type noImages struct{}

func (noImages) Resolve(string, int64) (string, bool) { return "", false }

func TestListTopLevel_PostMissing(t *testing.T) {
	svc := NewService(
		&fakeCommentRepo{},
		&fakePostRepo{getByIDFn: func(ctx context.Context, id int64) (domain.Post, error) {
			return domain.Post{}, domain.ErrNotFound
		}},
		&fakeLikeRepo{},
		&fakeUserRepo{},
		&fakeCache{},
		noImages{},
	)

	_, _, err := svc.ListTopLevel(context.Background(), 404, 1, 10, domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListTopLevel_AnnotatesAuthorsAndLikes(t *testing.T) {
	var likedQueryIDs []int64

	svc := NewService(
		&fakeCommentRepo{
			fetchTopLevelFn: func(ctx context.Context, postID, page, size int64) ([]domain.Comment, int64, error) {
				return []domain.Comment{
					{ID: 1, PostID: postID, UserID: 7, Content: faker.Sentence()},
					{ID: 2, PostID: postID, UserID: 8, Content: faker.Sentence()},
					{ID: 3, PostID: postID, UserID: 7, Content: faker.Sentence()},
				}, 3, nil
			},
		},
		&fakePostRepo{getByIDFn: func(ctx context.Context, id int64) (domain.Post, error) {
			return domain.Post{ID: id}, nil
		}},
		&fakeLikeRepo{
			likedCommentSetFn: func(ctx context.Context, userID int64, ids []int64) (map[int64]bool, error) {
				likedQueryIDs = ids
				return map[int64]bool{2: true}, nil
			},
		},
		&fakeUserRepo{getByIDsFn: func(ctx context.Context, ids []int64) ([]domain.User, error) {
			// Duplicate author IDs collapse into one batch lookup.
			assert.ElementsMatch(t, []int64{7, 8}, ids)
			return []domain.User{{ID: 7, Name: "mina"}, {ID: 8, Name: "jun"}}, nil
		}},
		&fakeCache{},
		noImages{},
	)

	comments, total, err := svc.ListTopLevel(context.Background(), 1, 1, 10, domain.Identity{UserID: 5, Role: domain.RoleUser})
	assert.NoError(t, err)
	assert.EqualValues(t, 3, total)

	// One membership query covers the whole page.
	assert.Equal(t, []int64{1, 2, 3}, likedQueryIDs)

	assert.Equal(t, "mina", comments[0].User.Name)
	assert.Equal(t, "jun", comments[1].User.Name)
	assert.False(t, comments[0].LikedByCaller)
	assert.True(t, comments[1].LikedByCaller)
}

func TestCreate_InvalidatesPostCache(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(
		&fakeCommentRepo{storeFn: func(ctx context.Context, c *domain.Comment) error {
			c.ID = 9
			return nil
		}},
		&fakePostRepo{},
		&fakeLikeRepo{},
		&fakeUserRepo{},
		cache,
		noImages{},
	)

	comment := &domain.Comment{PostID: 1, UserID: 2, Content: faker.Sentence()}
	assert.NoError(t, svc.Create(context.Background(), comment))
	assert.Equal(t, []int64{1}, cache.deleted)
}

func TestUpdate_Permissions(t *testing.T) {
	author := domain.Identity{UserID: 2, Role: domain.RoleUser}
	stranger := domain.Identity{UserID: 3, Role: domain.RoleUser}
	admin := domain.Identity{UserID: 4, Role: domain.RoleAdmin}

	updated := 0
	repo := &fakeCommentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Comment, error) {
			return &domain.Comment{ID: id, PostID: 1, UserID: 2}, nil
		},
		updateContentFn: func(ctx context.Context, id int64, content string) error {
			updated++
			return nil
		},
	}

	svc := NewService(repo, &fakePostRepo{}, &fakeLikeRepo{}, &fakeUserRepo{}, &fakeCache{}, noImages{})

	assert.ErrorIs(t, svc.Update(context.Background(), 1, "edited", stranger), domain.ErrForbidden)
	assert.NoError(t, svc.Update(context.Background(), 1, "edited", author))
	assert.NoError(t, svc.Update(context.Background(), 1, "edited", admin))
	assert.Equal(t, 2, updated)
}

func TestDelete_ReportsRemovedReplies(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(
		&fakeCommentRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Comment, error) {
				return &domain.Comment{ID: id, PostID: 1, UserID: 2}, nil
			},
			deleteFn: func(ctx context.Context, c *domain.Comment) (int64, error) {
				return 4, nil
			},
		},
		&fakePostRepo{},
		&fakeLikeRepo{},
		&fakeUserRepo{},
		cache,
		noImages{},
	)

	removed, err := svc.Delete(context.Background(), 10, domain.Identity{UserID: 2, Role: domain.RoleUser})
	assert.NoError(t, err)
	assert.EqualValues(t, 4, removed)
	assert.Equal(t, []int64{1}, cache.deleted)
}

func TestLike_AnonymousForbidden(t *testing.T) {
	svc := NewService(&fakeCommentRepo{}, &fakePostRepo{}, &fakeLikeRepo{}, &fakeUserRepo{}, &fakeCache{}, noImages{})

	err := svc.Like(context.Background(), 1, domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

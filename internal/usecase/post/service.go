package post

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/triplog/triplog-backend/domain"
)

type Service struct {
	postRepo domain.PostRepository
	dbRepo   domain.PostDBRepository
	likeRepo domain.LikeRepository
	cache    domain.PostCache
	images   domain.ImageURLResolver
}

var _ domain.PostUsecase = (*Service)(nil)

// NewService will create a new post service object
func NewService(p domain.PostRepository, db domain.PostDBRepository, l domain.LikeRepository, c domain.PostCache, img domain.ImageURLResolver) *Service {
	return &Service{
		postRepo: p,
		dbRepo:   db,
		likeRepo: l,
		cache:    c,
		images:   img,
	}
}

func (s *Service) Fetch(ctx context.Context, caller domain.Identity, page, size int64) ([]domain.Post, int64, error) {
	posts, total, err := s.postRepo.Fetch(ctx, page, size)
	if err != nil {
		return nil, 0, err
	}

	for i := range posts {
		s.decorateAuthor(&posts[i].User)
	}

	if err := s.annotateLiked(ctx, caller, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Identity) (domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}

	s.decorateAuthor(&post.User)

	if !caller.Anonymous() {
		liked, err := s.likeRepo.LikedPostSet(ctx, caller.UserID, []int64{id})
		if err != nil {
			return domain.Post{}, err
		}
		post.LikedByCaller = liked[id]
	}
	return post, nil
}

func (s *Service) Store(ctx context.Context, p *domain.Post) error {
	return s.postRepo.Store(ctx, p)
}

// Update checks ownership against the database directly. Permission
// lookups must not ride the cached read path, which counts a view.
func (s *Service) Update(ctx context.Context, p *domain.Post, caller domain.Identity) error {
	existing, err := s.dbRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if !domain.CanModify(existing.User.ID, caller) {
		return domain.ErrForbidden
	}
	return s.postRepo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64, caller domain.Identity) (int64, error) {
	existing, err := s.dbRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if !domain.CanModify(existing.User.ID, caller) {
		return 0, domain.ErrForbidden
	}
	return s.postRepo.Delete(ctx, id)
}

func (s *Service) Like(ctx context.Context, postID int64, caller domain.Identity) error {
	if caller.Anonymous() {
		return domain.ErrForbidden
	}
	if err := s.likeRepo.LikePost(ctx, caller.UserID, postID); err != nil {
		return err
	}
	s.invalidate(postID)
	return nil
}

func (s *Service) Unlike(ctx context.Context, postID int64, caller domain.Identity) error {
	if caller.Anonymous() {
		return domain.ErrForbidden
	}
	if err := s.likeRepo.UnlikePost(ctx, caller.UserID, postID); err != nil {
		return err
	}
	s.invalidate(postID)
	return nil
}

// invalidate drops the cached post after a counter mutation so the next
// read reflects the committed like_count.
func (s *Service) invalidate(postID int64) {
	if err := s.cache.DeletePost(context.Background(), postID); err != nil {
		logrus.Warnf("failed to invalidate post cache for %d: %v", postID, err)
	}
}

func (s *Service) annotateLiked(ctx context.Context, caller domain.Identity, posts []domain.Post) error {
	if caller.Anonymous() || len(posts) == 0 {
		return nil
	}

	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	liked, err := s.likeRepo.LikedPostSet(ctx, caller.UserID, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].LikedByCaller = liked[posts[i].ID]
	}
	return nil
}

func (s *Service) decorateAuthor(u *domain.User) {
	if url, ok := s.images.Resolve("user", u.ID); ok {
		u.ProfileImage = url
	}
}

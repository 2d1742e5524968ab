package comment

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/triplog/triplog-backend/domain"
)

type service struct {
	commentRepo domain.CommentRepository
	postRepo    domain.PostDBRepository
	likeRepo    domain.LikeRepository
	userRepo    domain.UserRepository
	cache       domain.PostCache
	images      domain.ImageURLResolver
}

var _ domain.CommentUsecase = (*service)(nil)

// NewService builds the comment usecase. The post repository here is the
// database layer on purpose: existence checks must not count a view or
// touch the cache.
func NewService(
	commentRepo domain.CommentRepository,
	postRepo domain.PostDBRepository,
	likeRepo domain.LikeRepository,
	userRepo domain.UserRepository,
	cache domain.PostCache,
	images domain.ImageURLResolver,
) *service {
	return &service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		cache:       cache,
		images:      images,
	}
}

func (s *service) ListTopLevel(ctx context.Context, postID, page, size int64, caller domain.Identity) ([]domain.Comment, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.commentRepo.FetchTopLevel(ctx, postID, page, size)
	if err != nil {
		return nil, 0, err
	}
	if err := s.annotate(ctx, comments, caller); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *service) ListReplies(ctx context.Context, parentID, page, size int64, caller domain.Identity) ([]domain.Comment, int64, error) {
	if _, err := s.commentRepo.GetByID(ctx, parentID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.commentRepo.FetchReplies(ctx, parentID, page, size)
	if err != nil {
		return nil, 0, err
	}
	if err := s.annotate(ctx, comments, caller); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *service) Create(ctx context.Context, c *domain.Comment) error {
	if err := s.commentRepo.Store(ctx, c); err != nil {
		return err
	}
	s.invalidatePost(c.PostID)
	return nil
}

func (s *service) Update(ctx context.Context, id int64, content string, caller domain.Identity) error {
	existing, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanModify(existing.UserID, caller) {
		return domain.ErrForbidden
	}
	return s.commentRepo.UpdateContent(ctx, id, content)
}

func (s *service) Delete(ctx context.Context, id int64, caller domain.Identity) (int64, error) {
	existing, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if !domain.CanModify(existing.UserID, caller) {
		return 0, domain.ErrForbidden
	}

	removed, err := s.commentRepo.Delete(ctx, existing)
	if err != nil {
		return 0, err
	}
	s.invalidatePost(existing.PostID)
	return removed, nil
}

func (s *service) Like(ctx context.Context, commentID int64, caller domain.Identity) error {
	if caller.Anonymous() {
		return domain.ErrForbidden
	}
	return s.likeRepo.LikeComment(ctx, caller.UserID, commentID)
}

func (s *service) Unlike(ctx context.Context, commentID int64, caller domain.Identity) error {
	if caller.Anonymous() {
		return domain.ErrForbidden
	}
	return s.likeRepo.UnlikeComment(ctx, caller.UserID, commentID)
}

// annotate batch-fills author details and the likedByCaller flag. Both
// lookups are one query per page, never one per row.
func (s *service) annotate(ctx context.Context, comments []domain.Comment, caller domain.Identity) error {
	if len(comments) == 0 {
		return nil
	}

	userIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]bool)
	for i := range comments {
		if !seen[comments[i].UserID] {
			userIDs = append(userIDs, comments[i].UserID)
			seen[comments[i].UserID] = true
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	userMap := make(map[int64]domain.User, len(users))
	for _, u := range users {
		if url, ok := s.images.Resolve("user", u.ID); ok {
			u.ProfileImage = url
		}
		userMap[u.ID] = u
	}

	for i := range comments {
		if u, ok := userMap[comments[i].UserID]; ok {
			author := u
			comments[i].User = &author
		}
	}

	if caller.Anonymous() {
		return nil
	}

	ids := make([]int64, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	liked, err := s.likeRepo.LikedCommentSet(ctx, caller.UserID, ids)
	if err != nil {
		return err
	}
	for i := range comments {
		comments[i].LikedByCaller = liked[comments[i].ID]
	}
	return nil
}

func (s *service) invalidatePost(postID int64) {
	if err := s.cache.DeletePost(context.Background(), postID); err != nil {
		logrus.Warnf("failed to invalidate post cache for %d: %v", postID, err)
	}
}

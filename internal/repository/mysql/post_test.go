package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/triplog/triplog-backend/domain"
)

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostDBRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `post` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "user_id", "like_count", "comment_count", "view_count"}).
			AddRow(1, "Jeju in spring", "body", 2, 3, 4, 100))
	mock.ExpectQuery("SELECT `tag` FROM `post_hashtag`").
		WillReturnRows(sqlmock.NewRows([]string{"tag"}).AddRow("jeju").AddRow("spring"))

	post, err := repo.GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Jeju in spring", post.Title)
	assert.EqualValues(t, 3, post.LikeCount)
	assert.EqualValues(t, 4, post.CommentCount)
	assert.Equal(t, []string{"jeju", "spring"}, post.Hashtags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByIDMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostDBRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `post` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Store(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostDBRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `post`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO `post_hashtag`").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	post := &domain.Post{Title: "Busan food tour", Content: "body", User: domain.User{ID: 2}, Hashtags: []string{"busan", "food"}}
	err := repo.Store(context.Background(), post)
	assert.NoError(t, err)
	assert.EqualValues(t, 9, post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_DeleteCascades(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostDBRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `comment` WHERE post_id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10).AddRow(11).AddRow(12))
	mock.ExpectExec("DELETE FROM `comment_like`").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("DELETE FROM `report`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `comment`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `post_like`").
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec("DELETE FROM `report`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `post_hashtag`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `post`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Delete(context.Background(), 1)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_DeleteMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostDBRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `comment` WHERE post_id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("DELETE FROM `post_like`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `report`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `post_hashtag`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `post`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AddViews(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostDBRepository(db)

	mock.ExpectExec("UPDATE `post` SET `view_count`=view_count").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddViews(context.Background(), 1, 13)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

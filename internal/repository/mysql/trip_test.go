package mysql

import (
	"context"
	"testing"

	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/triplog/triplog-backend/domain"
)

func TestTripRepository_FetchVisibleAnonymous(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `trip` WHERE private_plan = ").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT \\* FROM `trip` WHERE private_plan = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "private_plan"}).
			AddRow(1, 2, "Tokyo weekend", false))

	trips, total, err := repo.FetchVisible(context.Background(), domain.Identity{}, 1, 10)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, trips, 1)
	assert.False(t, trips[0].PrivatePlan)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_FetchVisibleMember(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	// The subquery folds into the outer statement, so one query counts
	// and one query pages.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `trip` WHERE private_plan = \\? OR user_id = \\? OR id IN").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT \\* FROM `trip` WHERE private_plan = \\? OR user_id = \\? OR id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "private_plan"}).
			AddRow(3, 9, "Private Kyoto", true).
			AddRow(1, 2, "Tokyo weekend", false))

	trips, total, err := repo.FetchVisible(context.Background(), domain.Identity{UserID: 4, Role: domain.RoleUser}, 1, 10)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, trips, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_FetchVisibleAdmin(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `trip`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery("SELECT \\* FROM `trip`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "private_plan"}).
			AddRow(3, 9, "Private Kyoto", true))

	_, total, err := repo.FetchVisible(context.Background(), domain.Identity{UserID: 1, Role: domain.RoleAdmin}, 1, 10)
	assert.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_GetByIDWithRoster(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `trip` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "private_plan"}).
			AddRow(3, 9, "Private Kyoto", true))
	mock.ExpectQuery("SELECT \\* FROM `trip_participant`").
		WillReturnRows(sqlmock.NewRows([]string{"trip_id", "user_id", "role"}).
			AddRow(3, 4, "companion").
			AddRow(3, 5, "planner"))

	trip, err := repo.GetByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.EqualValues(t, 9, trip.OwnerID)
	assert.Len(t, trip.Participants, 2)
	assert.Equal(t, "companion", trip.Participants[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_AddParticipantTwice(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectExec("INSERT INTO `trip_participant`").
		WillReturnError(&driver.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.AddParticipant(context.Background(), &domain.TripParticipant{TripID: 3, UserID: 4, Role: "companion"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_RemoveParticipantMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectExec("DELETE FROM `trip_participant`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RemoveParticipant(context.Background(), 3, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_DeleteCascades(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTripRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `trip_like`").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM `trip_participant`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `itinerary_item`").
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectExec("DELETE FROM `reservation`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `trip`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

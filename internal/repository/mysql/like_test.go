package mysql

import (
	"context"
	"testing"

	drivermysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/curata-io/curata/domain"
)

func TestLikeInsert(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewLikeRecordRepository(gdb)

	mock.ExpectExec("INSERT INTO `like_records`").
		WithArgs(int64(7), int64(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeInsertDuplicateIsConflict(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewLikeRecordRepository(gdb)

	mock.ExpectExec("INSERT INTO `like_records`").
		WithArgs(int64(7), int64(1), sqlmock.AnyArg()).
		WillReturnError(&drivermysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Insert(context.Background(), 7, 1)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLikeDelete(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewLikeRecordRepository(gdb)

	mock.ExpectExec("DELETE FROM `like_records`").
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeDeleteMissingIsNotFound(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewLikeRecordRepository(gdb)

	mock.ExpectExec("DELETE FROM `like_records`").
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 7, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLikeExists(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewLikeRecordRepository(gdb)

	mock.ExpectQuery("SELECT count(.+) FROM `like_records`").
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.Exists(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLikeCountByContent(t *testing.T) {
	gdb, mock := setupGormMock(t)
	repo := NewLikeRecordRepository(gdb)

	mock.ExpectQuery("SELECT count(.+) FROM `like_records`").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountByContent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

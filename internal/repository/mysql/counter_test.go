package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/curata-io/curata/domain"
)

func setupGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestCounterIncrementUpserts(t *testing.T) {
	gdb, mock := setupGormMock(t)
	store := NewCounterStore(gdb)

	mock.ExpectExec("INSERT INTO `counters`").
		WithArgs("curation", int64(1), "view", int64(1), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `counters`").
		WithArgs("curation", int64(1), "view").
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "entity_id", "kind", "value"}).
			AddRow("curation", 1, "view", 5))

	value, err := store.Increment(context.Background(), domain.ContentCuration, 1, domain.CounterView, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterIncrementClampsInsertValue(t *testing.T) {
	gdb, mock := setupGormMock(t)
	store := NewCounterStore(gdb)

	// a decrement against a missing row inserts zero, never a negative value
	mock.ExpectExec("INSERT INTO `counters`").
		WithArgs("curation", int64(1), "like", int64(0), int64(-1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `counters`").
		WithArgs("curation", int64(1), "like").
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "entity_id", "kind", "value"}).
			AddRow("curation", 1, "like", 0))

	value, err := store.Increment(context.Background(), domain.ContentCuration, 1, domain.CounterLike, -1)
	require.NoError(t, err)
	assert.Zero(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterReadMissingRowIsZero(t *testing.T) {
	gdb, mock := setupGormMock(t)
	store := NewCounterStore(gdb)

	mock.ExpectQuery("SELECT (.+) FROM `counters`").
		WithArgs("link", int64(99), "click").
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "entity_id", "kind", "value"}))

	value, err := store.Read(context.Background(), domain.ContentLink, 99, domain.CounterClick)
	require.NoError(t, err)
	assert.Zero(t, value)
}

func TestCounterMReadZeroFills(t *testing.T) {
	gdb, mock := setupGormMock(t)
	store := NewCounterStore(gdb)

	// only id 2 has a row; 1 and 3 must still appear with zero
	mock.ExpectQuery("SELECT (.+) FROM `counters`").
		WithArgs("curation", int64(1), int64(2), int64(3), "view").
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "entity_id", "kind", "value"}).
			AddRow("curation", 2, "view", 7))

	values, err := store.MRead(context.Background(), domain.ContentCuration, []int64{1, 2, 3}, domain.CounterView)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{1: 0, 2: 7, 3: 0}, values)
}

func TestCounterMReadEmptyIDs(t *testing.T) {
	gdb, _ := setupGormMock(t)
	store := NewCounterStore(gdb)

	values, err := store.MRead(context.Background(), domain.ContentCuration, nil, domain.CounterView)
	require.NoError(t, err)
	assert.Empty(t, values)
}

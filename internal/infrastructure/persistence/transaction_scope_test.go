package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appinv "github.com/warehousing/backend/internal/application/inventory"
	"github.com/warehousing/backend/internal/domain/shared"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockScope(t *testing.T, retry *RetryRunner) (*GormTransactionScope, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewGormTransactionScope(gormDB, retry), mock
}

func TestGormTransactionScope_CommitsOnSuccess(t *testing.T) {
	scope, mock := newMockScope(t, nil)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := scope.Execute(context.Background(), func(repos appinv.TransactionalRepositories) error {
		assert.NotNil(t, repos.Records())
		assert.NotNil(t, repos.Transactions())
		assert.NotNil(t, repos.Orders())
		assert.NotNil(t, repos.Transfers())
		assert.NotNil(t, repos.Statuses())
		assert.NotNil(t, repos.Kinds())
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	scope, mock := newMockScope(t, nil)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := scope.Execute(context.Background(), func(repos appinv.TransactionalRepositories) error {
		return shared.ErrInsufficientStock
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionScope_RetriesSerializationFailure(t *testing.T) {
	scope, mock := newMockScope(t, NewRetryRunner(testRetryConfig(3), nil))
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := scope.Execute(context.Background(), func(repos appinv.TransactionalRepositories) error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionScope_DoesNotRetryWithoutRunner(t *testing.T) {
	scope, mock := newMockScope(t, nil)
	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	err := scope.Execute(context.Background(), func(repos appinv.TransactionalRepositories) error {
		calls++
		return &pgconn.PgError{Code: "40001"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

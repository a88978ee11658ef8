package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	d, mock := newMockDatabase(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := d.WithTx(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.ExecContext(context.Background(), "DELETE FROM orders")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	d, mock := newMockDatabase(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := d.WithTx(context.Background(), func(*sql.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	d, mock := newMockDatabase(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	require.Panics(t, func() {
		_ = d.WithTx(context.Background(), func(*sql.Tx) error { panic("kaput") })
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginError(t *testing.T) {
	d, mock := newMockDatabase(t)
	mock.ExpectBegin().WillReturnError(errors.New("conn refused"))

	called := false
	err := d.WithTx(context.Background(), func(*sql.Tx) error { called = true; return nil })
	require.Error(t, err)
	require.False(t, called, "fn must not run when begin fails")
}

func TestWithTx_CommitError(t *testing.T) {
	d, mock := newMockDatabase(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := d.WithTx(context.Background(), func(*sql.Tx) error { return nil })
	require.ErrorContains(t, err, "commit")
}

func TestPing(t *testing.T) {
	d, mock := newMockDatabase(t)
	mock.ExpectPing()
	require.NoError(t, d.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	require.Error(t, d.Ping(context.Background()))
}

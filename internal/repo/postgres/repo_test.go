package postgres

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var (
	userCols        = []string{"user_id", "username", "full_name", "registration_date", "is_approved", "points"}
	photoCols       = []string{"photo_id", "user_id", "file_id", "sent_date", "status", "moderator_id", "decision_date"}
	transactionCols = []string{"transaction_id", "user_id", "amount", "admin_id", "admin_username", "date", "reason"}
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func userRow(id int64, username, fullName string, approved bool, points int64) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).
		AddRow(id, username, fullName, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), approved, points)
}

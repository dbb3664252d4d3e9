package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pan-day/bot-tele2/internal/repo/postgres/migrations"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	body, err := fs.ReadFile(migrations.FS, "00001_init.sql")
	require.NoError(t, err)

	sqlText := string(body)
	for _, table := range []string{"users", "photos", "transactions", "bot_audit"} {
		assert.Contains(t, sqlText, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.True(t, strings.Contains(sqlText, "-- +goose Up") && strings.Contains(sqlText, "-- +goose Down"))
}

func TestMigrateWrapsGooseError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var calledDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		calledDir = dir
		return errors.New("boom")
	}

	err = Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply migrations")
	assert.Equal(t, ".", calledDir)
}

package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/agriconnect/marketplace/internal/models"
)

func TestWithRowLockEmitsForUpdateOnPostgres(t *testing.T) {
	// DryRun builds SQL without touching a server, so a plain DSN is
	// enough to exercise the postgres dialect.
	db, err := gorm.Open(postgres.Open("host=localhost user=app dbname=app port=5432 sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	var p models.Product
	stmt := withRowLock(db).Where("id IN ?", []uint{1}).Find(&p).Statement
	require.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestWithRowLockSkipsSQLiteDialect(t *testing.T) {
	db := initTestDB(t)

	var p models.Product
	stmt := withRowLock(db.Session(&gorm.Session{DryRun: true})).Where("id IN ?", []uint{1}).Find(&p).Statement
	require.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}

package services

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintError(t *testing.T) {
	require.False(t, isUniqueConstraintError(nil))
	require.False(t, isUniqueConstraintError(errors.New("boom")))

	require.True(t, isUniqueConstraintError(gorm.ErrDuplicatedKey))
	require.True(t, isUniqueConstraintError(&mysql.MySQLError{Number: 1062}))
	require.False(t, isUniqueConstraintError(&mysql.MySQLError{Number: 1045}))
	require.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	require.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503"}))
	require.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: users.email")))
}

func TestNormalizePagination(t *testing.T) {
	page, size := normalizePagination(0, 0)
	require.Equal(t, 1, page)
	require.Equal(t, defaultPageSize, size)

	page, size = normalizePagination(3, 500)
	require.Equal(t, 3, page)
	require.Equal(t, maxPageSize, size)
}

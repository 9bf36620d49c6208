package postgres

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens a gorm postgres session over sqlmock.
func newMockDB(t *testing.T, config *gorm.Config) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	if config == nil {
		config = &gorm.Config{}
	}
	config.Logger = logger.Discard

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), config)
	require.NoError(t, err)
	return db, mock
}

package scheduler

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestPurgeExpired(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	at := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "media_url" FROM "posts" WHERE expires_at <= $1 AND media_url IS NOT NULL`)).
		WithArgs(at).
		WillReturnRows(sqlmock.NewRows([]string{"media_url"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "remixes" WHERE expires_at <= $1`)).
		WithArgs(at).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE expires_at <= $1`)).
		WithArgs(at).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	result, err := PurgeExpired(context.Background(), db, at)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), result.Posts)
	assert.Equal(t, int64(2), result.Remixes)
	assert.Equal(t, 0, result.Media)
	assert.NoError(t, mock.ExpectationsWereMet())
}

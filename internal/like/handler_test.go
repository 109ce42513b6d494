package like

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/notification"
	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)
	return db, mock
}

func expectAuthor(mock sqlmock.Sqlmock, authorID string) {
	mock.ExpectQuery(`SELECT (.+) FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow("p1", authorID))
}

func expectCount(mock sqlmock.Sqlmock, n int) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
}

func TestToggle_LikeThenUnlike(t *testing.T) {
	db, mock := setupMockDB(t)

	// like
	mock.ExpectBegin()
	expectAuthor(mock, "author")
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "post_id"}))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "likes"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "notifications"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectCount(mock, 4)
	mock.ExpectCommit()

	// unlike
	mock.ExpectBegin()
	expectAuthor(mock, "author")
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "post_id"}).AddRow("l1", "liker", "p1"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectCount(mock, 3)
	mock.ExpectCommit()

	liked, notif, err := Toggle(db, "p1", "liker")
	assert.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, int64(4), liked.LikeCount)
	if assert.NotNil(t, notif) {
		assert.Equal(t, notification.TypeLike, notif.Type)
		assert.Equal(t, "author", notif.UserID)
	}

	unliked, notif, err := Toggle(db, "p1", "liker")
	assert.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	assert.Equal(t, int64(3), unliked.LikeCount)
	assert.Nil(t, notif)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_OwnPostDoesNotNotify(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	expectAuthor(mock, "me")
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "post_id"}))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "likes"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectCount(mock, 1)
	mock.ExpectCommit()

	res, notif, err := Toggle(db, "p1", "me")
	assert.NoError(t, err)
	assert.True(t, res.IsLiked)
	assert.Nil(t, notif)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_ExpiredPost(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))
	mock.ExpectRollback()

	_, _, err := Toggle(db, "p1", "liker")
	assert.ErrorIs(t, err, post.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_ConcurrentDuplicateLike(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	expectAuthor(mock, "author")
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "post_id"}))
	// l'autre requête a inséré la ligne entre-temps
	mock.ExpectExec(`INSERT INTO "likes" (.+) ON CONFLICT \("post_id","user_id"\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectCount(mock, 1)
	mock.ExpectCommit()

	res, notif, err := Toggle(db, "p1", "liker")
	assert.NoError(t, err)
	assert.True(t, res.IsLiked)
	assert.Equal(t, int64(1), res.LikeCount)
	assert.Nil(t, notif)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package post

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
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

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })

	return mock
}

func newRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	r.GET("/api/posts/:id", GetPostByID)
	r.DELETE("/api/posts/:id", DeletePost)
	r.POST("/api/posts", CreatePost)
	return r
}

func TestGetPostByID_ExpiredOrMissing(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE posts.expires_at > (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "like_count", "is_liked"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/posts/p1", nil)
	newRouter("").ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPostByID_Live(t *testing.T) {
	mock := setupMockDB(t)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	freezeNow(t, at)

	mock.ExpectQuery(`SELECT (.+) FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "created_at", "expires_at", "like_count", "is_liked"}).
			AddRow("p1", "u1", "hello", at.Add(-time.Hour), at.Add(23*time.Hour), 3, true))
	mock.ExpectQuery(`SELECT (.+) FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow("u1", "alice"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/posts/p1", nil)
	newRouter("u2").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"like_count":3`)
	assert.Contains(t, w.Body.String(), `"is_liked":true`)
	assert.Contains(t, w.Body.String(), `"expires_in":82800`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePost(t *testing.T) {
	tests := []struct {
		name       string
		ownerID    string
		found      bool
		wantStatus int
	}{
		{"author deletes", "u1", true, http.StatusOK},
		{"someone else", "u2", true, http.StatusForbidden},
		{"missing post", "", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)

			rows := sqlmock.NewRows([]string{"id", "user_id", "content"})
			if tt.found {
				rows.AddRow("p1", tt.ownerID, "hello")
			}
			mock.ExpectQuery(`SELECT \* FROM "posts"`).WillReturnRows(rows)

			if tt.wantStatus == http.StatusOK {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts"`)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			}

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodDelete, "/api/posts/p1", nil)
			newRouter("u1").ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreatePost_TextWithMood(t *testing.T) {
	mock := setupMockDB(t)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	freezeNow(t, at)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow("u1", "alice"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"content":"hello","mood":"happy"}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter("u1").ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Post struct {
			Content   string    `json:"content"`
			Mood      string    `json:"mood"`
			CreatedAt time.Time `json:"created_at"`
			ExpiresAt time.Time `json:"expires_at"`
			ExpiresIn int64     `json:"expires_in"`
			Profiles  struct {
				Username string `json:"username"`
			} `json:"profiles"`
		} `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "hello", body.Post.Content)
	assert.Equal(t, "happy", body.Post.Mood)
	assert.Equal(t, TTL, body.Post.ExpiresAt.Sub(body.Post.CreatedAt))
	assert.GreaterOrEqual(t, body.Post.ExpiresIn, int64(86399))
	assert.LessOrEqual(t, body.Post.ExpiresIn, int64(86400))
	assert.Equal(t, "alice", body.Post.Profiles.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePost_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", `{"content":"   ","mood":"happy"}`},
		{"unknown mood", `{"content":"hello","mood":"furious"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			newRouter("u1").ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

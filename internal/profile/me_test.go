package profile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
)

func strPtr(s string) *string { return &s }

func TestUpdateInput_Apply(t *testing.T) {
	tests := []struct {
		name    string
		input   UpdateInput
		wantErr error
		check   func(t *testing.T, p Profile)
	}{
		{
			name:  "nothing sent keeps profile",
			input: UpdateInput{},
			check: func(t *testing.T, p Profile) {
				assert.Equal(t, "Alice", p.DisplayName)
				assert.Equal(t, "calm", p.Mood)
			},
		},
		{
			name:  "mood is normalised",
			input: UpdateInput{Mood: strPtr(" Excited ")},
			check: func(t *testing.T, p Profile) {
				assert.Equal(t, "excited", p.Mood)
			},
		},
		{
			name:  "display name and bio",
			input: UpdateInput{DisplayName: strPtr("Al"), Bio: strPtr("loops only")},
			check: func(t *testing.T, p Profile) {
				assert.Equal(t, "Al", p.DisplayName)
				assert.Equal(t, "loops only", *p.Bio)
			},
		},
		{
			name:    "invalid mood",
			input:   UpdateInput{Mood: strPtr("furious"), DisplayName: strPtr("ignored")},
			wantErr: mood.ErrInvalidMood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile{ID: "u1", Username: "alice", DisplayName: "Alice", Mood: "calm"}
			err := tt.input.Apply(&p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "Alice", p.DisplayName)
				return
			}
			assert.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestGetProfileByUsername(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	defer func() { database.DB = originalDB }()

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE username = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "mood"}).AddRow("u2", "bob", "sad"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "followers" WHERE following_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "followers" WHERE follower_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "followers" WHERE follower_id = (.+) AND following_id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "follower_id", "following_id"}).AddRow("f1", "u1", "u2"))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "u1"); c.Next() })
	r.GET("/api/profiles/:username", GetProfileByUsername)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/profiles/bob", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"followers_count":12`)
	assert.Contains(t, body, `"following_count":3`)
	assert.Contains(t, body, `"is_following":true`)
	assert.Contains(t, body, `"is_own_profile":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type objectCalls struct {
	uploaded []string
	deleted  []string
}

// fakeStorage remplace les appels S3 du handler pour la durée du test
func fakeStorage(t *testing.T, uploadErr error) *objectCalls {
	calls := &objectCalls{}
	origUpload, origDelete := uploadObject, deleteObject
	uploadObject = func(_ context.Context, _ io.Reader, key, _ string) (string, error) {
		calls.uploaded = append(calls.uploaded, key)
		if uploadErr != nil {
			return "", uploadErr
		}
		return "https://media.s3.us-east-1.amazonaws.com/" + key, nil
	}
	deleteObject = func(_ context.Context, key string) error {
		calls.deleted = append(calls.deleted, key)
		return nil
	}
	t.Cleanup(func() { uploadObject, deleteObject = origUpload, origDelete })
	return calls
}

func avatarRequest(t *testing.T) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("avatar", "me.png")
	assert.NoError(t, err)
	_, _ = fw.Write([]byte("png-bytes"))
	assert.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPatch, "/api/profiles/me", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpdateMe_AvatarReplacement(t *testing.T) {
	const oldURL = "https://media.s3.us-east-1.amazonaws.com/avatars/user_u1.jpg"

	tests := []struct {
		name        string
		uploadErr   error
		saveErr     error
		wantStatus  int
		wantDeleted []string
	}{
		{
			name:        "old avatar removed after save",
			wantStatus:  http.StatusOK,
			wantDeleted: []string{"avatars/user_u1.jpg"},
		},
		{
			name:        "failed upload keeps old avatar",
			uploadErr:   errors.New("s3 down"),
			wantStatus:  http.StatusInternalServerError,
			wantDeleted: nil,
		},
		{
			name:        "failed save drops new upload only",
			saveErr:     errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantDeleted: []string{"avatars/user_u1.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer mockDB.Close()

			db, err := gorm.Open(postgres.New(postgres.Config{
				Conn:                 mockDB,
				DriverName:           "postgres",
				PreferSimpleProtocol: true,
			}), &gorm.Config{})
			assert.NoError(t, err)

			originalDB := database.DB
			database.DB = db
			defer func() { database.DB = originalDB }()

			calls := fakeStorage(t, tt.uploadErr)

			mock.ExpectQuery(`SELECT \* FROM "profiles"`).
				WillReturnRows(sqlmock.NewRows([]string{"id", "username", "mood", "avatar_url"}).
					AddRow("u1", "alice", "calm", oldURL))
			if tt.uploadErr == nil {
				mock.ExpectBegin()
				if tt.saveErr != nil {
					mock.ExpectExec(regexp.QuoteMeta(`UPDATE "profiles"`)).WillReturnError(tt.saveErr)
					mock.ExpectRollback()
				} else {
					mock.ExpectExec(regexp.QuoteMeta(`UPDATE "profiles"`)).
						WillReturnResult(sqlmock.NewResult(0, 1))
					mock.ExpectCommit()
				}
			}

			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(func(c *gin.Context) { c.Set("user_id", "u1"); c.Next() })
			r.PATCH("/api/profiles/me", UpdateMe)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, avatarRequest(t))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, []string{"avatars/user_u1.png"}, calls.uploaded)
			assert.Equal(t, tt.wantDeleted, calls.deleted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/supabase"
)

const testSecret = "super-secret-jwt-token-for-tests"

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	assert.NoError(t, err)
	return s
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	Configure(Options{JWTSecret: testSecret})

	valid := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	expired := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signed(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "user-123"})
	noSub := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"role": "authenticated"})

	tests := []struct {
		name       string
		url        string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid bearer", "/whoami", "Bearer " + valid, http.StatusOK, "user-123"},
		{"token in query for streams", "/whoami?access_token=" + valid, "", http.StatusOK, "user-123"},
		{"missing header", "/whoami", "", http.StatusUnauthorized, ""},
		{"not bearer", "/whoami", "Basic abc", http.StatusUnauthorized, ""},
		{"expired", "/whoami", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong key", "/whoami", "Bearer " + wrongKey, http.StatusUnauthorized, ""},
		{"no sub", "/whoami", "Bearer " + noSub, http.StatusUnauthorized, ""},
	}

	r := newRouter(AuthMiddleware())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	Configure(Options{JWTSecret: testSecret})

	valid := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "user-456",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	r := newRouter(OptionalAuthMiddleware())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-456", w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", w.Body.String())
}

func TestOptionalAuthMiddleware_RefreshesExpiredToken(t *testing.T) {
	Configure(Options{JWTSecret: testSecret})

	expired := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "user-789",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	fresh := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "user-789",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + fresh + `"}`))
	}))
	defer srv.Close()

	original := supabase.Default
	supabase.Init(srv.URL, "anon")
	defer func() { supabase.Default = original }()

	r := newRouter(OptionalAuthMiddleware())

	t.Run("with refresh token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		req.Header.Set("X-Refresh-Token", "refresh")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-789", w.Body.String())
		assert.Equal(t, fresh, w.Header().Get("X-New-Access-Token"))
	})

	t.Run("without refresh token stays anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "", w.Body.String())
		assert.Empty(t, w.Header().Get("X-New-Access-Token"))
	})
}

func TestTokenFrom_HeaderWinsOverQuery(t *testing.T) {
	Configure(Options{JWTSecret: testSecret})

	valid := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami?access_token="+valid, nil)
	req.Header.Set("Authorization", "Basic abc")
	newRouter(AuthMiddleware()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		rows       *sqlmock.Rows
		wantStatus int
		wantRole   string
	}{
		{"anonymous", "", nil, http.StatusUnauthorized, ""},
		{"regular user", "u1", sqlmock.NewRows([]string{"role"}), http.StatusForbidden, ""},
		{"moderator", "u2", sqlmock.NewRows([]string{"role"}).AddRow("moderator"), http.StatusOK, "moderator"},
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

			if tt.rows != nil {
				mock.ExpectQuery(`SELECT (.+) FROM "admin_users"`).WillReturnRows(tt.rows)
			}

			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.GET("/admin",
				func(c *gin.Context) {
					if tt.userID != "" {
						c.Set("user_id", tt.userID)
					}
					c.Next()
				},
				AdminOnlyMiddleware(),
				func(c *gin.Context) { c.String(http.StatusOK, c.GetString("admin_role")) },
			)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantRole, w.Body.String())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
